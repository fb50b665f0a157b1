package memory

import "strings"

// ConfigBool reads global config.<key>.
func ConfigBool(global Object, key string) bool {
	cfg, ok := global.TryGetObject(KeyConfig)
	if !ok {
		return false
	}
	return cfg.GetBool(key)
}

func SetConfigBool(global Object, key string, value bool) {
	global.GetOrCreateObject(KeyConfig).SetBool(key, value)
}

// ConfigFloat reads global config.<key>, falling back to def.
func ConfigFloat(global Object, key string, def float64) float64 {
	cfg, ok := global.TryGetObject(KeyConfig)
	if !ok {
		return def
	}
	if v, ok := cfg.TryGetFloat(key); ok {
		return v
	}
	return def
}

func WantedOverride(room Object, jobID string) (int, bool) {
	overrides, ok := room.TryGetObject(KeyWantedCreepsPerJob)
	if !ok {
		return 0, false
	}
	return overrides.TryGetInt(jobID)
}

func SetWantedOverride(room Object, jobID string, wanted int) {
	room.GetOrCreateObject(KeyWantedCreepsPerJob).SetInt(jobID, wanted)
}

func ClearWantedOverride(room Object, jobID string) {
	if overrides, ok := room.TryGetObject(KeyWantedCreepsPerJob); ok {
		overrides.Delete(jobID)
	}
}

// ChangeInt adds delta to the int at key and returns the new value.
func ChangeInt(o Object, key string, delta int) int {
	v := o.GetInt(key) + delta
	o.SetInt(key, v)
	return v
}

// IncrementKillCount bumps killCount.<jobID> and killCount.total.
func IncrementKillCount(o Object, jobID string) {
	kc := o.GetOrCreateObject(KeyKillCount)
	ChangeInt(kc, jobID, 1)
	ChangeInt(kc, KeyKillCountTotal, 1)
}

func KillCount(o Object, jobID string) int {
	kc, ok := o.TryGetObject(KeyKillCount)
	if !ok {
		return 0
	}
	return kc.GetInt(jobID)
}

// AppendLog appends a line to the unit log, keeping the newest MaxLogLines.
func AppendLog(unit Object, line string) {
	lines := LogLines(unit)
	lines = append(lines, strings.ReplaceAll(line, "\n", " "))
	if len(lines) > MaxLogLines {
		lines = lines[len(lines)-MaxLogLines:]
	}
	unit.SetString(KeyLog, strings.Join(lines, "\n"))
}

func LogLines(unit Object) []string {
	raw := unit.GetString(KeyLog)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func JobLabel(unit Object) (string, bool) {
	id, ok := unit.TryGetString(KeyJob)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func Target(unit Object) (string, bool) {
	id, ok := unit.TryGetString(KeyTarget)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func SetTarget(unit Object, id string) { unit.SetString(KeyTarget, id) }

func ClearTarget(unit Object) { unit.Delete(KeyTarget) }

func TempTarget(unit Object) (string, bool) {
	id, ok := unit.TryGetString(KeyTempTarget)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func SetTempTarget(unit Object, id string) { unit.SetString(KeyTempTarget, id) }

func ClearTempTarget(unit Object) { unit.Delete(KeyTempTarget) }

// Units returns global creeps, creating it when absent.
func Units(global Object) Object {
	return global.GetOrCreateObject(KeyCreeps)
}

// Rooms returns global rooms, creating it when absent.
func Rooms(global Object) Object {
	return global.GetOrCreateObject(KeyRooms)
}

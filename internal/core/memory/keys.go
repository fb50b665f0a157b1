package memory

// Unit scope.
const (
	KeyJob          = "job"
	KeyTarget       = "target"
	KeyTempTarget   = "tempTarget"
	KeyIsBuilding   = "isBuilding"
	KeyIsDelivering = "isDelivering"
	KeyIsUpgrading  = "isUpgrading"
	KeySuicide      = "suicide"
	KeyLog          = "log"
)

// Room scope.
const (
	KeyWantedCreepsPerJob   = "wantedCreepsPerJob"
	KeyAdditionalExtensions = "additionalExtensions"
	KeyKillCount            = "killCount"
	KeyKillCountTotal       = "total"
	KeyUpgrades             = "upgrades"
)

// Global scope.
const (
	KeyConfig    = "config"
	KeyShowJobs  = "showJobs"
	KeyShowPaths = "showPaths"
	KeyCreeps    = "creeps"
	KeyRooms     = "rooms"

	KeyRepairStructuresAtPercent = "repairStructuresAtPercent"
	KeyRepairWallsAtPercent      = "repairWallsAtPercent"
)

const (
	DefaultRepairStructuresAtPercent = 0.8
	DefaultRepairWallsAtPercent      = 0.00001

	// MaxLogLines bounds the per-unit log; older lines are dropped first.
	MaxLogLines = 10
)

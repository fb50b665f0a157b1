package simworld

import "errors"

var (
	ErrSpawnBusy        = errors.New("simworld: spawn busy")
	ErrInvalidBody      = errors.New("simworld: invalid body")
	ErrNotEnoughEnergy  = errors.New("simworld: not enough energy")
	ErrNameExists       = errors.New("simworld: name already exists")
	ErrUnknownRoom      = errors.New("simworld: unknown room")
	ErrDuplicateRoom    = errors.New("simworld: duplicate room")
	ErrInvalidStructure = errors.New("simworld: invalid structure kind")
)

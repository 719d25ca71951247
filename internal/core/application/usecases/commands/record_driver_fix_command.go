package commands

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/guard"
)

var ErrRecordDriverFixCommandIsNotConstructed = errors.New(
	"RecordDriverFixCommand must be created via NewRecordDriverFixCommand constructor",
)

// RecordDriverFixCommand represents a driver location report.
// The coordinate is validated at construction; ordering between reports is
// not, the newest accepted report simply wins.
type RecordDriverFixCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	point    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRecordDriverFixCommand creates a command to record a driver location fix.
func NewRecordDriverFixCommand(driverID kernel.UUID, latitude, longitude float64) (RecordDriverFixCommand, error) {
	command := RecordDriverFixCommand{
		guard: guard.NewConstructorGuard(),
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return RecordDriverFixCommand{}, err
	}
	command.point = point

	if err = command.setDriverID(driverID); err != nil {
		return RecordDriverFixCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordDriverFixCommandIsNotConstructed if validation fails.
func (c RecordDriverFixCommand) Validate() error {
	return c.guard.Validate(ErrRecordDriverFixCommandIsNotConstructed)
}

// DriverID returns the identifier of the reporting driver.
func (c RecordDriverFixCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Point returns the reported coordinate.
func (c RecordDriverFixCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c *RecordDriverFixCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

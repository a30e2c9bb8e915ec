package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams wraps every rejection from Params.Validate.
var ErrInvalidParams = errors.New("invalid layout params")

// Params controls the shape of every wall cluster. One value is shared by
// all anchors of a generation run.
type Params struct {
	MinRows, MaxRows int
	MinCols, MaxCols int

	// Spacing is the distance between neighbouring brick centres along the
	// wall; DistToCenter is half a brick's height.
	Spacing      float64
	DistToCenter float64

	// OffsetRadius bounds how far a wall starts from its anchor; the
	// distance is drawn from [0, OffsetRadius).
	OffsetRadius int
	// DirectionBound is the integer range [-b, b) from which the planar
	// direction components are drawn before normalisation.
	DirectionBound int
}

// ParamsForBrick derives spacing from the brick edge length: bricks are laid
// diagonally, so centres sit sqrt(2)*size apart.
func ParamsForBrick(size float64, minRows, maxRows, minCols, maxCols, offsetRadius, directionBound int) Params {
	return Params{
		MinRows:        minRows,
		MaxRows:        maxRows,
		MinCols:        minCols,
		MaxCols:        maxCols,
		Spacing:        math.Sqrt2 * size,
		DistToCenter:   size / 2,
		OffsetRadius:   offsetRadius,
		DirectionBound: directionBound,
	}
}

func (p Params) Validate() error {
	switch {
	case p.MinRows < 0:
		return fmt.Errorf("%w: min rows %d is negative", ErrInvalidParams, p.MinRows)
	case p.MinRows > p.MaxRows:
		return fmt.Errorf("%w: min rows %d > max rows %d", ErrInvalidParams, p.MinRows, p.MaxRows)
	case p.MinCols < 0:
		return fmt.Errorf("%w: min cols %d is negative", ErrInvalidParams, p.MinCols)
	case p.MinCols > p.MaxCols:
		return fmt.Errorf("%w: min cols %d > max cols %d", ErrInvalidParams, p.MinCols, p.MaxCols)
	case !(p.Spacing > 0) || math.IsInf(p.Spacing, 0):
		return fmt.Errorf("%w: spacing %v must be positive", ErrInvalidParams, p.Spacing)
	case !(p.DistToCenter >= 0) || math.IsInf(p.DistToCenter, 0):
		return fmt.Errorf("%w: dist to center %v must not be negative", ErrInvalidParams, p.DistToCenter)
	case p.OffsetRadius < 0:
		return fmt.Errorf("%w: offset radius %d is negative", ErrInvalidParams, p.OffsetRadius)
	case p.DirectionBound < 0:
		return fmt.Errorf("%w: direction bound %d is negative", ErrInvalidParams, p.DirectionBound)
	}
	return nil
}

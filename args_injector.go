package simpledic

import (
	"errors"
	"fmt"
)

// ResolveParameters resolves the parameters against the container, in order.
//
// A parameter without usable type (untyped or scalar) fails when required. When optional, it
// ends the resolution: it and every following parameter keep their default value. An optional
// component parameter whose dependency cannot be resolved ends the resolution the same way.
func (c *Container) ResolveParameters(params []Param) ([]any, error) {
	args := make([]any, 0, len(params))
	for _, p := range params {
		if p.Type == "" || p.Scalar {
			if p.Optional {
				return args, nil
			}
			return nil, fmt.Errorf("%w: parameter %s", ErrMissingParameterType, p)
		}

		if p.Optional {
			value, found, err := c.tryGetInstance(p.Type)
			if err != nil {
				return nil, &ArgResolutionError{Param: p, Cause: err}
			}
			if !found {
				c.logger.Debug().Str("param", p.String()).Msg("optional parameter not resolved, using defaults")
				return args, nil
			}
			args = append(args, value)
			continue
		}

		value, err := c.GetInstance(p.Type)
		if err != nil {
			return nil, &ArgResolutionError{Param: p, Cause: err}
		}
		args = append(args, value)
	}

	return args, nil
}

// tryGetInstance is GetInstance for optional dependencies: any failure but a broken resolution
// stack means "not found".
func (c *Container) tryGetInstance(typ TypeID) (any, bool, error) {
	value, err := c.GetInstance(typ)
	switch {
	case err == nil:
		return value, true, nil
	case errors.Is(err, ErrInternalConsistency):
		return nil, false, err
	default:
		c.logger.Trace().Err(err).Str("type", typ.String()).Msg("optional dependency failed")
		return nil, false, nil
	}
}

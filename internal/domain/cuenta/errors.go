package cuenta

import "errors"

// ErrNoConvention indica una combinación documento/parte sin convención declarada.
// Si aparece, falta extender DirectionFor; nunca se decide un signo en el call site.
var ErrNoConvention = errors.New("combinación de documento y parte sin convención de signo")

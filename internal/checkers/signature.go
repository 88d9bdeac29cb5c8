package checkers

import (
	"reflect"

	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
)

// SignatureChecker verifies that the equality method accepts the type
// itself: T, *T or an interface one of them implements.
type SignatureChecker struct {
	config *config.Configuration
}

func NewSignatureChecker(cfg *config.Configuration) *SignatureChecker {
	return &SignatureChecker{config: cfg}
}

func (c *SignatureChecker) Name() string { return "signature" }

func (c *SignatureChecker) Check() error {
	ct := c.config.Contract()
	t, param := ct.Type(), ct.Param()
	ptr := reflect.PointerTo(t)

	switch {
	case param == t, param == ptr:
		return nil
	case param.Kind() == reflect.Interface && (t.Implements(param) || ptr.Implements(param)):
		return nil
	}

	f := diagnostic.Of(
		"%% takes %%, which can never be %%. Its parameter must be %%, %% or an interface they implement.",
		ct.EqualName(), param, t, t, ptr)
	return diagnostic.Fail(diagnostic.CategorySignature, "", f, nil)
}

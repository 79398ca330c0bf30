package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"rankd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct tags of every config section and folds the first
// failure into one error.
func (cv *CnfValidator) Validate() error {
	sections := map[string]interface{}{
		"webServer":   &cv.conf.WebServer,
		"persistence": &cv.conf.Persistence,
		"logger":      &cv.conf.Logger,
		"ranking":     &cv.conf.Ranking,
	}
	for name, section := range sections {
		v := validate.Struct(section)
		if !v.Validate() {
			return fmt.Errorf("config section %q: %s", name, v.Errors.One())
		}
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
)

// Required pairs an env name with the value loaded for it.
type Required struct {
	Env   string
	Value string
}

// RequireNonEmpty reports every required variable that came back empty.
func RequireNonEmpty(vars ...Required) error {
	var missing []string
	for _, v := range vars {
		if strings.TrimSpace(v.Value) == "" {
			missing = append(missing, v.Env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env %s", strings.Join(missing, ", "))
	}
	return nil
}

package config

import (
	"fmt"
	"slices"
	"strings"
)

var storeDrivers = []string{"memory", "sqlite", "postgres"}

var staffRoles = []string{"MPM", "KEMAHASISWAAN", "BEM"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	driver := strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if !slices.Contains(storeDrivers, driver) {
		return fmt.Errorf("store.driver must be one of %v (got %q)", storeDrivers, c.Store.Driver)
	}
	c.Store.Driver = driver
	if driver == "postgres" && c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required when store.driver is postgres")
	}
	if driver == "sqlite" && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when store.driver is sqlite")
	}

	if len(c.Auth.Accounts) == 0 {
		c.Auth.Accounts = defaultAccounts()
	}
	seen := map[string]bool{}
	for i, a := range c.Auth.Accounts {
		if a.Username == "" {
			return fmt.Errorf("auth.accounts[%d]: username is required", i)
		}
		if !slices.Contains(staffRoles, a.Role) {
			return fmt.Errorf("auth.accounts[%d] (%s): role must be one of %v (got %q)", i, a.Username, staffRoles, a.Role)
		}
		key := strings.ToLower(a.Username)
		if seen[key] {
			return fmt.Errorf("auth.accounts: duplicate username %q", a.Username)
		}
		seen[key] = true
	}

	if c.Rate.Enabled {
		if c.Rate.Limit <= 0 {
			return fmt.Errorf("rate.limit must be > 0 (got %d)", c.Rate.Limit)
		}
		if c.Rate.Window <= 0 {
			return fmt.Errorf("rate.window must be > 0 (got %v)", c.Rate.Window)
		}
	}

	return nil
}

// defaultAccounts is the demo staff roster used when no accounts are
// configured. These logins accept any password.
func defaultAccounts() []AccountConfig {
	return []AccountConfig{
		{Username: "admin_mpm", Name: "Admin MPM ULBI", Role: "MPM"},
		{Username: "staff_kema", Name: "Staff Kemahasiswaan", Role: "KEMAHASISWAAN"},
		{Username: "bem_ulbi", Name: "Presiden BEM", Role: "BEM"},
	}
}

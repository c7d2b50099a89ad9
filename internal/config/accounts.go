package config

import (
	"fmt"

	"github.com/nao1215/hoyoauth/internal/model"
)

// AccountConfig is one account entry of the account file.
type AccountConfig struct {
	// Name identifies the account on the command line and in reports.
	Name string `yaml:"name"`

	// Region and Kind fall back to the file defaults when empty.
	Region string `yaml:"region,omitempty"`
	Kind   string `yaml:"kind,omitempty"`

	// Account is the user name or email of password logins.
	Account string `yaml:"account,omitempty"`

	// PasswordEnv names the environment variable holding the password.
	PasswordEnv string `yaml:"password_env,omitempty"`

	// Mobile is the phone number of mobile logins.
	Mobile string `yaml:"mobile,omitempty"`
}

// Defaults are applied to accounts that leave a field empty.
type Defaults struct {
	Region string `yaml:"region,omitempty"`
	Kind   string `yaml:"kind,omitempty"`
	Lang   string `yaml:"lang,omitempty"`
}

// File is the structure of the .hoyoauth account file.
type File struct {
	Defaults Defaults        `yaml:"defaults,omitempty"`
	Accounts []AccountConfig `yaml:"accounts,omitempty"`
}

// LookupFunc finds an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Resolve turns every entry into an account, reading passwords through lookup.
func (f *File) Resolve(lookup LookupFunc) ([]model.Account, error) {
	seen := make(map[string]bool, len(f.Accounts))
	accounts := make([]model.Account, 0, len(f.Accounts))
	for i, ac := range f.Accounts {
		if ac.Name == "" {
			ac.Name = fmt.Sprintf("account-%d", i+1)
		}
		if seen[ac.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, ac.Name)
		}
		seen[ac.Name] = true

		a, err := f.resolve(ac, lookup)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// Account resolves the entry called name.
func (f *File) Account(name string, lookup LookupFunc) (model.Account, error) {
	for _, ac := range f.Accounts {
		if ac.Name == name {
			return f.resolve(ac, lookup)
		}
	}
	return model.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, name)
}

func (f *File) resolve(ac AccountConfig, lookup LookupFunc) (model.Account, error) {
	regionName := firstNonEmpty(ac.Region, f.Defaults.Region, model.RegionOverseas.String())
	region, err := model.ParseRegion(regionName)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", ac.Name, err)
	}

	kindName := firstNonEmpty(ac.Kind, f.Defaults.Kind, model.PasswordKind(region).String())
	kind, err := model.ParseLoginKind(kindName)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", ac.Name, err)
	}

	a := model.Account{
		Name:    ac.Name,
		Region:  region,
		Kind:    kind,
		Account: ac.Account,
		Mobile:  ac.Mobile,
	}

	switch kind {
	case model.LoginKindMobile:
		if a.Mobile == "" {
			return model.Account{}, fmt.Errorf("%w: %s has no mobile", ErrIncompleteAccount, ac.Name)
		}
	case model.LoginKindQRCode:
	default:
		if a.Account == "" || ac.PasswordEnv == "" {
			return model.Account{}, fmt.Errorf("%w: %s needs account and password_env", ErrIncompleteAccount, ac.Name)
		}
		password, ok := lookup(ac.PasswordEnv)
		if !ok || password == "" {
			return model.Account{}, fmt.Errorf("%w: %s (account %s)", ErrPasswordNotSet, ac.PasswordEnv, ac.Name)
		}
		a.Password = password
	}
	return a, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

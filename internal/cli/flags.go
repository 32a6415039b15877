package cli

import "gokoans/internal/config"

// Flags holds command-line flags
type Flags struct {
	Jobs      int
	KoansPath string
	Filter    string
	NoColor   bool
	Progress  bool
	KeepGoing bool
	Verbose   bool
	TestCases bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Jobs:      f.Jobs,
		KoansPath: f.KoansPath,
		Filter:    f.Filter,
		NoColor:   f.NoColor,
		Progress:  f.Progress,
		KeepGoing: f.KeepGoing,
		Verbose:   f.Verbose,
		TestCases: f.TestCases,
	}
}

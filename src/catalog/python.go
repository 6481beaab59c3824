package catalog

// pythonSupport lists the Python versions each release's SDK works
// with. R2015b shipped no Python SDK at all.
var pythonSupport = map[string][]string{
	"R2024b": {"3.9", "3.10", "3.11", "3.12"},
	"R2024a": {"3.9", "3.10", "3.11"},
	"R2023b": {"3.9", "3.10", "3.11"},
	"R2023a": {"3.8", "3.9", "3.10"},
	"R2022b": {"2.7", "3.8", "3.9", "3.10"},
	"R2022a": {"2.7", "3.8", "3.9"},
	"R2021b": {"2.7", "3.7", "3.8", "3.9"},
	"R2021a": {"2.7", "3.7", "3.8"},
	"R2020b": {"2.7", "3.6", "3.7", "3.8"},
	"R2020a": {"2.7", "3.6", "3.7"},
	"R2019b": {"2.7", "3.6", "3.7"},
	"R2019a": {"2.7", "3.5", "3.6", "3.7"},
	"R2018b": {"2.7", "3.5", "3.6"},
	"R2018a": {"2.7", "3.5", "3.6"},
	"R2017b": {"2.7", "3.4", "3.5", "3.6"},
	"R2017a": {"2.7", "3.4", "3.5"},
	"R2016b": {"2.7", "3.3", "3.4", "3.5"},
	"R2016a": {"2.7", "3.3", "3.4"},
	"R2015b": {},
	"R2015a": {"2.7", "3.3", "3.4"},
}

// SupportedPythonVersions lists the Python versions the SDK bundled
// with a release supports. Nothing in the install path consumes this;
// it is surfaced for the language-bridge wrappers and the info
// command.
func SupportedPythonVersions(release string) ([]string, bool) {
	pythons, ok := pythonSupport[release]
	return pythons, ok
}

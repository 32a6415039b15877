package domain

// Test is the handle the engine passes to result listeners for a single test function
type Test struct {
	Name    string `json:"name"`    // Test function name, e.g. TestAssertTruth
	Group   string `json:"group"`   // Lesson the test was declared in, e.g. about_asserts
	Package string `json:"package"` // Import path of the lesson package
}

// Lesson is one koan package on the path to enlightenment
type Lesson struct {
	Name    string `json:"name"`    // Directory name, used as the group identifier
	Dir     string `json:"dir"`     // Absolute directory of the package
	Package string `json:"package"` // Relative package pattern passed to go test, e.g. ./about_asserts
}

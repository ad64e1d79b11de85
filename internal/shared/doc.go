// Package shared groups helpers used across the analysis packages.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger to assert on structured logs
//   - dataset fixtures (ReadmissionCSV, EncounterCSV) and WriteFile
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    path := testutil.WriteFile(t, "sample.csv", testutil.ReadmissionCSV)
//	    ...
//	    testutil.AssertNoErrors(t, handler)
//	}
package shared

package resultstore

import (
	"fmt"

	"github.com/repograde/repograde/schema"
)

// PrintStatus displays result store statistics in human-readable format.
func PrintStatus(status schema.StoreStatus) {
	fmt.Printf("Result Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Runs: %d\n", status.RunCount)
	fmt.Printf("Total Records: %d\n", status.RecordCount)
	if status.RunCount > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRun.Format("2006-01-02 15:04:05"))
	}
}

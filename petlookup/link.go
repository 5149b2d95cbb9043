package petlookup

import "fmt"

const referenceBase = "https://www.wowhead.com/mop-classic/npc="

// ReferenceURL links a pet to its external reference page
func ReferenceURL(id int64) string {
	return fmt.Sprintf("%s%d", referenceBase, id)
}

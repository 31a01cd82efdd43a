package util

import (
	"encoding/json"
	"fmt"
)

// PrintJSON pretty-prints obj to stdout. Marshal failures are swallowed;
// callers only pass plain structs that always encode.
func PrintJSON(obj any) {
	txt, _ := json.MarshalIndent(obj, "", "  ")
	fmt.Println(string(txt))
}

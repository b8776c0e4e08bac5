package noisy

import (
	"fmt"
	"os"
)

func Report(msg string) string {
	fmt.Println(msg)        // want "fmt.Println in internal package"
	fmt.Printf("%s\n", msg) // want "fmt.Printf in internal package"
	fmt.Fprintln(os.Stderr, msg)
	return fmt.Sprintf("%s!", msg)
}

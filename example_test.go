package changetracker_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	changetracker "github.com/proj-coursebook/change-tracker"
)

// Example_basic tracks the same file across three runs.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "changetracker-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	tr, err := changetracker.New(filepath.Join(tmpDir, "history.json"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, content := range []string{"x", "x", "y"} {
		states, err := tr.TrackChanges(ctx, changetracker.Files(map[string][]byte{
			"a.txt": []byte(content),
		}))
		if err != nil {
			log.Fatal(err)
		}

		state := states["a.txt"]
		prev, _ := state.PreviousFingerprint()
		fmt.Printf("%s %q\n", state.Status(), prev)
	}
	// Output:
	// new ""
	// unchanged "9dd4e461268c8034f5c8564e155c67a6"
	// modified "9dd4e461268c8034f5c8564e155c67a6"
}

// Example_disabled shows that disabled tracking reports every file untracked.
func Example_disabled() {
	tr, err := changetracker.New("", changetracker.WithEnabled(false))
	if err != nil {
		log.Fatal(err)
	}

	states, err := tr.TrackChanges(context.Background(), changetracker.Files(map[string][]byte{
		"a.txt": []byte("x"),
	}))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(states["a.txt"].Status())
	// Output:
	// untracked
}

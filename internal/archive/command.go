package archive

import (
	"fmt"
	"os/exec"
	"strings"

	"cback/internal/backup"
)

// CommandArchiver shells out to an external archive tool, the way the
// classic `tar -czf DEST FILES...` invocation works. The command runs with
// the source root as its working directory so the selected root-relative
// paths resolve.
type CommandArchiver struct {
	bin  string
	args []string
	dir  string
}

// NewCommandArchiver creates an archiver that runs bin with args, then the
// destination, then the selected files. dir is the working directory for
// the command; empty means inherit.
func NewCommandArchiver(bin string, args []string, dir string) *CommandArchiver {
	return &CommandArchiver{bin: bin, args: args, dir: dir}
}

// Archive runs the external command. Output is captured and included in the
// error on failure.
func (a *CommandArchiver) Archive(destination string, files []string) error {
	cmd := exec.Command(a.bin, a.argv(destination, files)...)
	cmd.Dir = a.dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", a.bin, err, msg)
		}
		return fmt.Errorf("%s: %w", a.bin, err)
	}
	return nil
}

// Describe returns the exact command line that Archive would run.
func (a *CommandArchiver) Describe(destination string, files []string) string {
	return strings.Join(append([]string{a.bin}, a.argv(destination, files)...), " ")
}

func (a *CommandArchiver) argv(destination string, files []string) []string {
	argv := make([]string, 0, len(a.args)+1+len(files))
	argv = append(argv, a.args...)
	argv = append(argv, destination)
	argv = append(argv, files...)
	return argv
}

// Compile-time check that CommandArchiver implements backup.Archiver
var _ backup.Archiver = (*CommandArchiver)(nil)

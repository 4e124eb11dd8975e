package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cback/internal/backup"
)

// ResolveDestination turns the raw destination argument into a concrete
// archive path. If the argument names an existing directory, a uniquely
// named file inside it is chosen; otherwise the argument is the literal
// archive path.
func ResolveDestination(dest string, clock backup.Clock, idgen backup.IDGenerator) (string, error) {
	info, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return dest, nil
		}
		return "", fmt.Errorf("checking destination %s: %w", dest, err)
	}
	if !info.IsDir() {
		return dest, nil
	}

	stamp := clock.Now().UTC().Format("20060102T150405Z")
	id := idgen.New()
	if i := strings.Index(id, "-"); i > 0 {
		id = id[:i]
	}
	name := fmt.Sprintf("cback-%s-%s.tar.gz", stamp, id)
	return filepath.Join(dest, name), nil
}

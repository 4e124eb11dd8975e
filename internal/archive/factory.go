package archive

import (
	"fmt"

	"cback/internal/backup"
	"cback/internal/config"
)

// NewArchiverFromConfig creates the archiver selected by the config.
// root is the source root the run is using (may be empty).
func NewArchiverFromConfig(cfg config.ArchiverConfig, root string) (backup.Archiver, error) {
	switch cfg.Type {
	case "", "internal":
		return NewTarGzArchiver(root), nil
	case "command":
		bin := cfg.Command
		if bin == "" {
			bin = "tar"
		}
		args := cfg.Args
		if len(args) == 0 {
			args = []string{"-czf"}
		}
		return NewCommandArchiver(bin, args, root), nil
	default:
		return nil, fmt.Errorf("unknown archiver type: %s", cfg.Type)
	}
}

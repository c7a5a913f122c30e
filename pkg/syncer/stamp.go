package syncer

import (
	"encoding/json"
	"os"

	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
)

type stamp struct {
	Version string `json:"version"`
}

// readStamp returns the stamped tag. A missing, unreadable or empty stamp
// reads as not installed.
func readStamp(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var s stamp
	if err := json.Unmarshal(data, &s); err != nil || s.Version == "" {
		return "", false
	}
	return s.Version, true
}

func writeStamp(path, tag string) error {
	data, err := json.Marshal(stamp{Version: tag})
	if err != nil {
		return errors.Wrap(err, "failed to encode stamp")
	}
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileModeDefault); err != nil {
		return errors.NewFilesystemError("write stamp", path, err)
	}
	return nil
}

package workspace

import (
	"os"
	"path/filepath"
	"time"
)

// FileWatcher polls the workspace root and keeps the workspace in sync
// with the files on disk. OnChange, when set, runs after every scan that
// added, modified or removed a file.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	OnChange     func()
}

func NewFileWatcher(w *Workspace, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

// Stop ends polling and waits for a scan in progress to finish.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	<-fw.doneCh
}

func (fw *FileWatcher) run() {
	defer close(fw.doneCh)
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.poll()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.poll()
		}
	}
}

func (fw *FileWatcher) poll() {
	if fw.Scan() && fw.OnChange != nil {
		fw.OnChange()
	}
}

// Scan compares the files on disk with the last scan, updates the
// workspace and reports whether anything changed.
func (fw *FileWatcher) Scan() bool {
	changed := false
	current := make(map[string]bool)

	filepath.Walk(fw.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != fw.workspace.RootDir() && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != SourceExt {
			return nil
		}

		current[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || !info.ModTime().Equal(lastMod) {
			if err := fw.workspace.ScanFile(path); err != nil {
				// retried on the next scan
				fw.workspace.log.Warningf("rescan %s: %s", path, err)
				return nil
			}
			fw.modTimes[path] = info.ModTime()
			changed = true
		}
		return nil
	})

	for path := range fw.modTimes {
		if !current[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			changed = true
		}
	}
	return changed
}

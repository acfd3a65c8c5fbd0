package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/tdsent/storage"
	"github.com/revelaction/tdsent/target"
)

// TargetStore persists one collection per JSON file under a root directory.
// The file name is the collection name plus ".json"; the content is the
// target array in insertion order.
type TargetStore struct {
	root string
}

var _ storage.TargetRepository = (*TargetStore)(nil)

func NewTargetStore(root string) *TargetStore {
	return &TargetStore{root: root}
}

func (s *TargetStore) Collections() ([]string, error) {
	files, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(file.Name(), ".json"))
	}

	sort.Strings(names)
	return names, nil
}

func (s *TargetStore) Read(name string) (*target.Collection, error) {
	raw, err := os.ReadFile(filepath.Join(s.root, name+".json"))
	if err != nil {
		return nil, err
	}

	var targets []target.Target
	if err := json.Unmarshal(raw, &targets); err != nil {
		return nil, fmt.Errorf("collection %s: %w", name, err)
	}

	return target.NewCollection(targets...)
}

func (s *TargetStore) Write(name string, c *target.Collection) error {
	data, err := json.MarshalIndent(c.Targets(), "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(s.root, name+".json"), data, 0644)
}

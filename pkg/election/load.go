package election

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"hash"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/elecciones/pkg/errors"
)

//go:embed data/*.json
var bundled embed.FS

const (
	executiveFile   = "ejecutivo"
	legislativeFile = "legislativo"
	provincesFile   = "provincias"
	timelineFile    = "hitos"
)

var extensions = []string{".json", ".yaml", ".yml"}

var (
	defaultOnce sync.Once
	defaultData *Dataset
	defaultErr  error
)

// Default returns the bundled 1994–2024 dataset. It is parsed once.
func Default() (*Dataset, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(bundled, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultData, defaultErr = LoadFS(sub)
	})
	return defaultData, defaultErr
}

// Load reads a dataset from a directory on disk.
func Load(dir string) (*Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads a dataset from the root of fsys and validates it.
func LoadFS(fsys fs.FS) (*Dataset, error) {
	h := sha256.New()
	d := &Dataset{
		executive:   make(map[int]Result),
		legislative: make(map[int]Result),
		provinces:   make(map[int][]ProvinceResult),
	}

	var exec, leg map[string]Result
	if err := readTable(fsys, executiveFile, true, h, &exec); err != nil {
		return nil, err
	}
	if err := readTable(fsys, legislativeFile, true, h, &leg); err != nil {
		return nil, err
	}
	if err := fillResults(d.executive, exec, Executive); err != nil {
		return nil, err
	}
	if err := fillResults(d.legislative, leg, Legislative); err != nil {
		return nil, err
	}

	var provs map[string][]ProvinceResult
	if err := readTable(fsys, provincesFile, false, h, &provs); err != nil {
		return nil, err
	}
	for key, rows := range provs {
		year, err := parseYearKey(provincesFile, key)
		if err != nil {
			return nil, err
		}
		d.provinces[year] = rows
	}

	if err := readTable(fsys, timelineFile, false, h, &d.timeline); err != nil {
		return nil, err
	}
	slices.SortStableFunc(d.timeline, func(a, b Milestone) int { return a.Year - b.Year })

	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.hash = hex.EncodeToString(h.Sum(nil))
	return d, nil
}

// readTable decodes the first of name.json, name.yaml, name.yml found in
// fsys into v and feeds the raw bytes to h.
func readTable(fsys fs.FS, name string, required bool, h hash.Hash, v any) error {
	for _, ext := range extensions {
		file := name + ext
		data, err := fs.ReadFile(fsys, file)
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "read %s", file)
		}
		h.Write([]byte(file))
		h.Write(data)
		if err := decode(path.Ext(file), data, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse %s", file)
		}
		return nil
	}
	if required {
		return errors.New(errors.ErrCodeFileNotFound, "missing %s.json (or .yaml)", name)
	}
	return nil
}

func decode(ext string, data []byte, v any) error {
	if ext == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func fillResults(dst map[int]Result, src map[string]Result, t Type) error {
	for key, r := range src {
		year, err := parseYearKey(string(t), key)
		if err != nil {
			return err
		}
		r.Year = year
		r.Type = t
		dst[year] = r
	}
	return nil
}

func parseYearKey(table, key string) (int, error) {
	year, err := strconv.Atoi(key)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidDataset, "%s: %q is not a year", table, key)
	}
	return year, nil
}

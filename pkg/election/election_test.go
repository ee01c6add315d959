package election

import (
	"testing"
	"testing/fstest"

	"github.com/matzehuels/elecciones/pkg/errors"
)

func TestDefault(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	for _, typ := range Types {
		got := d.Years(typ)
		if len(got) != len(Years) {
			t.Fatalf("Years(%s) = %v, want %v", typ, got, Years)
		}
		for i := range Years {
			if got[i] != Years[i] {
				t.Errorf("Years(%s)[%d] = %d, want %d", typ, i, got[i], Years[i])
			}
		}
	}
	if d.Hash() == "" {
		t.Error("Hash() is empty")
	}
	if len(d.Timeline()) == 0 {
		t.Error("Timeline() is empty")
	}
}

func TestDatasetSeats(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		year  int
		total int
	}{
		{1994, 72},
		{1999, 71},
		{2004, 78},
		{2024, 71},
	}
	for _, tt := range tests {
		req, err := d.Seats(tt.year)
		if err != nil {
			t.Fatalf("Seats(%d) error: %v", tt.year, err)
		}
		if req.TotalSeats != tt.total {
			t.Errorf("Seats(%d).TotalSeats = %d, want %d", tt.year, req.TotalSeats, tt.total)
		}
		if req.SeatSum() != tt.total {
			t.Errorf("Seats(%d) sum = %d, want %d", tt.year, req.SeatSum(), tt.total)
		}
	}

	if _, err := d.Seats(1995); !errors.Is(err, errors.ErrCodeInvalidYear) {
		t.Errorf("Seats(1995) error = %v, want INVALID_YEAR", err)
	}
}

func TestSeatRequestRejectsExecutive(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	r, err := d.Result(Executive, 2019)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := SeatRequest(r); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("SeatRequest(executive) error = %v, want UNSUPPORTED", err)
	}
}

func TestDatasetResult(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	r, err := d.Result(Executive, 2009)
	if err != nil {
		t.Fatal(err)
	}
	w, ok := r.Winner()
	if !ok || w.Name != "CD" {
		t.Errorf("Winner() = %q, want CD", w.Name)
	}
	if r.Total() != r.TotalVotes {
		t.Errorf("Total() = %d, want total votes %d", r.Total(), r.TotalVotes)
	}

	// Accessors hand out copies.
	r.Parties[0].Name = "changed"
	again, _ := d.Result(Executive, 2009)
	if again.Parties[0].Name == "changed" {
		t.Error("Result() shares its party slice with the dataset")
	}

	if _, err := d.Result(Type("senado"), 2009); !errors.Is(err, errors.ErrCodeInvalidElection) {
		t.Errorf("unknown type error = %v, want INVALID_ELECTION", err)
	}
}

func TestDatasetProvinces(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		year     int
		count    int
		hasOeste bool
	}{
		{2009, 9, false},
		{2014, 10, true},
		{2024, 10, true},
	}
	for _, tt := range tests {
		rows, err := d.Provinces(tt.year)
		if err != nil {
			t.Fatalf("Provinces(%d) error: %v", tt.year, err)
		}
		if len(rows) != tt.count {
			t.Errorf("Provinces(%d) = %d rows, want %d", tt.year, len(rows), tt.count)
		}
		var oeste bool
		for _, r := range rows {
			if r.Name == "Panamá Oeste" {
				oeste = true
			}
		}
		if oeste != tt.hasOeste {
			t.Errorf("Provinces(%d) has Panamá Oeste = %v, want %v", tt.year, oeste, tt.hasOeste)
		}
	}
}

func TestPartyColors(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	colors := d.PartyColors(Legislative, 2019)
	if colors["PRD"] == "" {
		t.Error("PartyColors missing PRD")
	}
	if len(d.PartyColors(Legislative, 1990)) != 0 {
		t.Error("PartyColors for a missing year should be empty")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"ejecutivo", Executive, false},
		{" Legislativo ", Legislative, false},
		{"senado", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1994", 1994, false},
		{"2024", 2024, false},
		{"2000", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseYear(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseYear(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

const (
	minimalExecutive = `{"2019": {"total_votes": 100, "parties": [
		{"name": "A", "color": "#111111", "percentage": 60, "votes": 60},
		{"name": "B", "color": "#222222", "percentage": 40, "votes": 40}]}}`
	minimalLegislative = `{"2019": {"total_seats": 5, "parties": [
		{"name": "A", "color": "#111111", "seats": 3},
		{"name": "B", "color": "#222222", "seats": 2}]}}`
)

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ejecutivo.json":   {Data: []byte(minimalExecutive)},
		"legislativo.json": {Data: []byte(minimalLegislative)},
		"provincias.yaml": {Data: []byte(`
"2019":
  - name: Colón
    votes: 10
    winner: A
`)},
		"hitos.yml": {Data: []byte(`
- year: 2019
  title: B
- year: 1989
  title: A
`)},
	}

	d, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	rows, err := d.Provinces(2019)
	if err != nil || len(rows) != 1 || rows[0].Winner != "A" {
		t.Errorf("Provinces(2019) = %v, %v", rows, err)
	}
	tl := d.Timeline()
	if len(tl) != 2 || tl[0].Year != 1989 {
		t.Errorf("Timeline() = %v, want sorted by year", tl)
	}

	d2, err := LoadFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if d.Hash() != d2.Hash() {
		t.Error("Hash() differs for identical input")
	}
	def, _ := Default()
	if d.Hash() == def.Hash() {
		t.Error("Hash() equal for different datasets")
	}
}

func TestLoadFSErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		code errors.Code
	}{
		{
			name: "missing executive",
			fsys: fstest.MapFS{"legislativo.json": {Data: []byte(minimalLegislative)}},
			code: errors.ErrCodeFileNotFound,
		},
		{
			name: "malformed json",
			fsys: fstest.MapFS{
				"ejecutivo.json":   {Data: []byte(`{`)},
				"legislativo.json": {Data: []byte(minimalLegislative)},
			},
			code: errors.ErrCodeInvalidDataset,
		},
		{
			name: "seat mismatch",
			fsys: fstest.MapFS{
				"ejecutivo.json": {Data: []byte(minimalExecutive)},
				"legislativo.json": {Data: []byte(`{"2019": {"total_seats": 6, "parties": [
					{"name": "A", "color": "#111111", "seats": 3}]}}`)},
			},
			code: errors.ErrCodeInvalidDataset,
		},
		{
			name: "unknown year",
			fsys: fstest.MapFS{
				"ejecutivo.json":   {Data: []byte(minimalExecutive)},
				"legislativo.json": {Data: []byte(`{"2020": {"total_seats": 1, "parties": [{"name": "A", "color": "#111", "seats": 1}]}}`)},
			},
			code: errors.ErrCodeInvalidDataset,
		},
		{
			name: "bad color",
			fsys: fstest.MapFS{
				"ejecutivo.json":   {Data: []byte(minimalExecutive)},
				"legislativo.json": {Data: []byte(`{"2019": {"total_seats": 1, "parties": [{"name": "A", "color": "red;", "seats": 1}]}}`)},
			},
			code: errors.ErrCodeInvalidDataset,
		},
		{
			name: "duplicate party",
			fsys: fstest.MapFS{
				"ejecutivo.json": {Data: []byte(minimalExecutive)},
				"legislativo.json": {Data: []byte(`{"2019": {"total_seats": 2, "parties": [
					{"name": "A", "color": "#111", "seats": 1},
					{"name": "A", "color": "#111", "seats": 1}]}}`)},
			},
			code: errors.ErrCodeInvalidDataset,
		},
		{
			name: "unknown field",
			fsys: fstest.MapFS{
				"ejecutivo.json":   {Data: []byte(minimalExecutive)},
				"legislativo.json": {Data: []byte(`{"2019": {"total_seats": 1, "escaños": 1, "parties": []}}`)},
			},
			code: errors.ErrCodeInvalidDataset,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys)
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadFS() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	if _, err := Load(t.TempDir() + "/missing"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

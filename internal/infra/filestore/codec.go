package filestore

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/kanban/internal/domain"
)

// csvHeader is the first line of every CSV data file.
var csvHeader = []string{"id", "type", "name", "status", "description", "startTime", "duration", "epic"}

// record is the flat, one-per-item persisted form shared by all codecs.
// Duration is stored in whole minutes.
// Fields are ordered to minimize memory padding.
type record struct {
	StartTime   *time.Time  `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	Duration    *int64      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Epic        *int        `json:"epic,omitempty" yaml:"epic,omitempty"`
	Type        domain.Kind `json:"type" yaml:"type"`
	Name        string      `json:"name" yaml:"name"`
	Status      string      `json:"status" yaml:"status"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	ID          int         `json:"id" yaml:"id"`
}

// document is the top-level JSON and YAML layout.
type document struct {
	Items []record `json:"items" yaml:"items"`
}

// codec reads and writes a list of records in one file format.
type codec interface {
	encode(w io.Writer, recs []record) error
	decode(r io.Reader) ([]record, error)
}

func codecFor(format string) (codec, error) {
	switch format {
	case domain.FormatCSV:
		return csvCodec{}, nil
	case domain.FormatJSON:
		return jsonCodec{}, nil
	case domain.FormatYAML:
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

// Encode writes data to w in the given format.
func Encode(w io.Writer, format string, data *domain.Dataset) error {
	c, err := codecFor(format)
	if err != nil {
		return err
	}
	return c.encode(w, toRecords(data))
}

// Decode reads a dataset in the given format from r.
func Decode(r io.Reader, format string) (*domain.Dataset, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}
	recs, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs)
}

// === CSV ===

type csvCodec struct{}

func (csvCodec) encode(w io.Writer, recs []record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range recs {
		row := []string{
			strconv.Itoa(r.ID),
			string(r.Type),
			r.Name,
			r.Status,
			r.Description,
			"",
			"",
			"",
		}
		if r.StartTime != nil {
			row[5] = r.StartTime.Format(time.RFC3339Nano)
		}
		if r.Duration != nil {
			row[6] = strconv.FormatInt(*r.Duration, 10)
		}
		if r.Epic != nil {
			row[7] = strconv.Itoa(*r.Epic)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv record %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (csvCodec) decode(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	var recs []record
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCorruptRecord, err)
		}
		if line == 1 && row[0] == csvHeader[0] {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", domain.ErrCorruptRecord, line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRow(row []string) (record, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return record{}, fmt.Errorf("parse id: %w", err)
	}
	rec := record{
		ID:          id,
		Type:        domain.Kind(row[1]),
		Name:        row[2],
		Status:      row[3],
		Description: row[4],
	}
	if row[5] != "" {
		start, err := time.Parse(time.RFC3339Nano, row[5])
		if err != nil {
			return record{}, fmt.Errorf("parse start time: %w", err)
		}
		rec.StartTime = &start
	}
	if row[6] != "" {
		minutes, err := strconv.ParseInt(row[6], 10, 64)
		if err != nil {
			return record{}, fmt.Errorf("parse duration: %w", err)
		}
		rec.Duration = &minutes
	}
	if row[7] != "" {
		epic, err := strconv.Atoi(row[7])
		if err != nil {
			return record{}, fmt.Errorf("parse epic: %w", err)
		}
		rec.Epic = &epic
	}
	return rec, nil
}

// === JSON ===

type jsonCodec struct{}

func (jsonCodec) encode(w io.Writer, recs []record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Items: nonNil(recs)}); err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}
	return nil
}

func (jsonCodec) decode(r io.Reader) ([]record, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptRecord, err)
	}
	return doc.Items, nil
}

// === YAML ===

type yamlCodec struct{}

func (yamlCodec) encode(w io.Writer, recs []record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Items: nonNil(recs)}); err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}
	return enc.Close()
}

func (yamlCodec) decode(r io.Reader) ([]record, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptRecord, err)
	}
	return doc.Items, nil
}

func nonNil(recs []record) []record {
	if recs == nil {
		return []record{}
	}
	return recs
}

// === Conversion ===

// toRecords flattens a dataset into records: tasks, then epics, then subtasks.
func toRecords(data *domain.Dataset) []record {
	if data == nil {
		return nil
	}
	recs := make([]record, 0, data.Len())
	for _, t := range data.Tasks {
		recs = append(recs, baseRecord(t, domain.KindTask))
	}
	for _, e := range data.Epics {
		recs = append(recs, baseRecord(&e.Task, domain.KindEpic))
	}
	for _, s := range data.Subtasks {
		rec := baseRecord(&s.Task, domain.KindSubtask)
		epic := s.EpicID
		rec.Epic = &epic
		recs = append(recs, rec)
	}
	return recs
}

func baseRecord(t *domain.Task, kind domain.Kind) record {
	rec := record{
		ID:          t.ID,
		Type:        kind,
		Name:        t.Name,
		Status:      string(t.Status),
		Description: t.Description,
	}
	if t.StartTime != nil {
		start := *t.StartTime
		rec.StartTime = &start
	}
	if t.Duration != nil {
		minutes := int64(*t.Duration / time.Minute)
		rec.Duration = &minutes
	}
	return rec
}

// fromRecords rebuilds a dataset. Epic time fields and child lists are left
// for the engine to derive.
func fromRecords(recs []record) (*domain.Dataset, error) {
	data := &domain.Dataset{}
	for _, rec := range recs {
		status, err := domain.ParseStatus(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", domain.ErrCorruptRecord, rec.ID, err)
		}
		task := domain.Task{
			ID:          rec.ID,
			Name:        rec.Name,
			Status:      status,
			Description: rec.Description,
		}
		if rec.StartTime != nil {
			start := *rec.StartTime
			task.StartTime = &start
		}
		if rec.Duration != nil {
			d := time.Duration(*rec.Duration) * time.Minute
			task.Duration = &d
		}

		switch rec.Type {
		case domain.KindTask:
			data.Tasks = append(data.Tasks, &task)
		case domain.KindEpic:
			data.Epics = append(data.Epics, &domain.Epic{Task: task})
		case domain.KindSubtask:
			s := &domain.Subtask{Task: task}
			if rec.Epic != nil {
				s.EpicID = *rec.Epic
			}
			data.Subtasks = append(data.Subtasks, s)
		default:
			return nil, fmt.Errorf("%w: item %d: unknown type %q", domain.ErrCorruptRecord, rec.ID, rec.Type)
		}
	}
	return data, nil
}

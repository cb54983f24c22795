// Package importer reads row-oriented CSV files for the batch import pipeline.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record is one data row keyed by lower-cased header name.
type Record map[string]string

// Get returns the trimmed value of a column, or "" when absent.
func (r Record) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Read parses a CSV file with a header line. A header missing any of the
// required columns fails the whole file before any row is returned. Short
// rows are padded with empty values.
func Read(r io.Reader, required []string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading header: file is empty")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	if err := checkHeader(header, required); err != nil {
		return nil, err
	}

	var records []Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = fields[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadProjects parses a projects CSV.
func ReadProjects(r io.Reader) ([]ProjectRow, error) {
	recs, err := Read(r, projectRequired)
	if err != nil {
		return nil, err
	}
	rows := make([]ProjectRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, ProjectRow{
			Name:        rec.Get("name"),
			Description: rec.Get("description"),
			TeamUUID:    rec.Get("team_uuid"),
			StartDate:   rec.Get("start_date"),
			EndDate:     rec.Get("end_date"),
			Status:      strings.ToLower(rec.Get("status")),
		})
	}
	return rows, nil
}

// ReadTasks parses a tasks CSV.
func ReadTasks(r io.Reader) ([]TaskRow, error) {
	recs, err := Read(r, taskRequired)
	if err != nil {
		return nil, err
	}
	rows := make([]TaskRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, TaskRow{
			Title:         rec.Get("title"),
			Description:   rec.Get("description"),
			ProjectUUID:   rec.Get("project_uuid"),
			AssigneeEmail: rec.Get("assignee_email"),
			Status:        strings.ToLower(rec.Get("status")),
			Priority:      strings.ToLower(rec.Get("priority")),
			DueDate:       rec.Get("due_date"),
		})
	}
	return rows, nil
}

// ReadMembers parses a team members CSV.
func ReadMembers(r io.Reader) ([]MemberRow, error) {
	recs, err := Read(r, memberRequired)
	if err != nil {
		return nil, err
	}
	rows := make([]MemberRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, MemberRow{
			TeamUUID: rec.Get("team_uuid"),
			Email:    rec.Get("email"),
			Role:     strings.ToLower(rec.Get("role")),
		})
	}
	return rows, nil
}

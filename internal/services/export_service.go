package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"

	exportSheet = "Questions"
)

var exportHeaders = []string{
	"ID", "Title", "Question Type", "Category", "Difficulty", "Price",
	"Status", "Question", "Answer", "Version", "Updated At",
}

type exportService struct {
	store *draftStore
	log   *ServiceLogger
}

func NewExportService(store *draftStore, log *ServiceLogger) ExportService {
	return &exportService{store: store, log: log}
}

func (s *exportService) ExportDraft(ctx context.Context, draftID, format, userID string) (result *ExportResult, err error) {
	op := s.log.WithOperation(ctx, "export_draft", userID)
	defer func() { op.LogResult(draftID, err) }()

	if err := checkExportFormat(format); err != nil {
		return nil, err
	}
	draft, err := s.store.load(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	return s.export([]*models.Draft{draft}, format, "draft-"+draft.ID)
}

// ExportDrafts exports every draft of userID matching filters. Paging in
// filters is ignored.
func (s *exportService) ExportDrafts(ctx context.Context, userID string, filters repositories.DraftFilters, format string) (result *ExportResult, err error) {
	op := s.log.WithOperation(ctx, "export_drafts", userID)
	defer func() { op.LogResult("", err) }()

	if err := checkExportFormat(format); err != nil {
		return nil, err
	}

	filters.Limit = 100
	filters.Offset = 0
	filters = filters.Normalize()

	var drafts []*models.Draft
	for {
		page, total, err := s.store.repo.List(ctx, userID, filters)
		if err != nil {
			return nil, fmt.Errorf("failed to list drafts for export: %w", err)
		}
		drafts = append(drafts, page...)
		if len(page) == 0 || int64(len(drafts)) >= total {
			break
		}
		filters.Offset += len(page)
	}
	return s.export(drafts, format, "drafts")
}

func (s *exportService) export(drafts []*models.Draft, format, baseName string) (*ExportResult, error) {
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		row, err := draftToRow(d)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	var (
		data []byte
		err  error
	)
	result := &ExportResult{FileName: baseName + "." + format}
	switch format {
	case ExportFormatCSV:
		result.ContentType = "text/csv"
		data, err = writeCSV(rows)
	case ExportFormatXLSX:
		result.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, err = writeExcel(rows)
	}
	if err != nil {
		return nil, err
	}
	result.Data = data
	return result, nil
}

func checkExportFormat(format string) error {
	switch format {
	case ExportFormatCSV, ExportFormatXLSX:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, format)
}

func draftToRow(d *models.Draft) ([]string, error) {
	doc, err := decodeDocument(d)
	if err != nil {
		return nil, err
	}
	preview := authoring.Render(doc.Content)

	return []string{
		d.ID,
		d.Title,
		string(d.Type),
		d.CategoryPath,
		string(d.Difficulty),
		strconv.FormatInt(d.Price, 10),
		string(d.Status),
		preview.Text(),
		preview.AnswerText(),
		strconv.Itoa(d.Version),
		d.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	}, nil
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return []byte(buf.String()), nil
}

func writeExcel(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(exportSheet); err == nil {
		f.SetActiveSheet(index)
	}

	all := append([][]string{exportHeaders}, rows...)
	for r, row := range all {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", last, bold)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

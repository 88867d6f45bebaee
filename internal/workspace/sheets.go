package workspace

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// ReadSheet returns the values in the given A1 range.
func (s *Stack) ReadSheet(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	svc, err := s.sheetsService(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	return resp.Values, nil
}

// WriteSheet writes values into the given A1 range and returns the number
// of updated cells.
func (s *Stack) WriteSheet(ctx context.Context, spreadsheetID, writeRange string, values [][]any) (int64, error) {
	svc, err := s.sheetsService(ctx)
	if err != nil {
		return 0, err
	}
	vr := &sheets.ValueRange{Values: values}
	resp, err := svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("writing sheet: %w", err)
	}
	return resp.UpdatedCells, nil
}

package canvas

import (
	"context"
	"encoding/json"
	"fmt"
)

func (s *service) ListModules(ctx context.Context, courseID string, opts ListOptions) ([]Module, string, error) {
	res, err := s.call(ctx, epListModules, callOptions{
		pathArgs: []any{courseID},
		rawQuery: listQuery(opts),
		cursor:   opts.Cursor,
	})
	if err != nil {
		return nil, "", err
	}

	var modules []Module
	if err := json.Unmarshal(res.body, &modules); err != nil {
		return nil, "", fmt.Errorf("decode modules: %w", err)
	}
	return modules, nextCursor(res.header), nil
}

func (s *service) ListModuleItems(ctx context.Context, courseID, moduleID string, opts ListOptions) ([]ModuleItem, string, error) {
	res, err := s.call(ctx, epListModuleItems, callOptions{
		pathArgs: []any{courseID, moduleID},
		rawQuery: listQuery(opts),
		cursor:   opts.Cursor,
	})
	if err != nil {
		return nil, "", err
	}

	var items []ModuleItem
	if err := json.Unmarshal(res.body, &items); err != nil {
		return nil, "", fmt.Errorf("decode module items: %w", err)
	}
	return items, nextCursor(res.header), nil
}

func (s *service) ListPages(ctx context.Context, courseID string, opts ListOptions) ([]Page, string, error) {
	res, err := s.call(ctx, epListPages, callOptions{
		pathArgs: []any{courseID},
		rawQuery: listQuery(opts),
		cursor:   opts.Cursor,
	})
	if err != nil {
		return nil, "", err
	}

	var pages []Page
	if err := json.Unmarshal(res.body, &pages); err != nil {
		return nil, "", fmt.Errorf("decode pages: %w", err)
	}
	return pages, nextCursor(res.header), nil
}

func (s *service) ListContentExports(ctx context.Context, courseID string, opts ListOptions) ([]ContentExport, string, error) {
	res, err := s.call(ctx, epListContentExports, callOptions{
		pathArgs: []any{courseID},
		rawQuery: listQuery(opts),
		cursor:   opts.Cursor,
	})
	if err != nil {
		return nil, "", err
	}

	var exports []ContentExport
	if err := json.Unmarshal(res.body, &exports); err != nil {
		return nil, "", fmt.Errorf("decode content exports: %w", err)
	}
	return exports, nextCursor(res.header), nil
}

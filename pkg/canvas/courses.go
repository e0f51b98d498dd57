package canvas

import (
	"context"
	"encoding/json"
	"fmt"
)

func (s *service) ListCourses(ctx context.Context, opts ListOptions) ([]Course, string, error) {
	return s.listCourses(ctx, epListCourses, nil, opts)
}

func (s *service) ListAccountCourses(ctx context.Context, accountID string, opts ListOptions) ([]Course, string, error) {
	return s.listCourses(ctx, epAccountCourses, []any{accountID}, opts)
}

func (s *service) listCourses(ctx context.Context, ep endpoint, pathArgs []any, opts ListOptions) ([]Course, string, error) {
	res, err := s.call(ctx, ep, callOptions{
		pathArgs: pathArgs,
		rawQuery: listQuery(opts),
		cursor:   opts.Cursor,
	})
	if err != nil {
		return nil, "", err
	}

	var courses []Course
	if err := json.Unmarshal(res.body, &courses); err != nil {
		return nil, "", fmt.Errorf("decode courses: %w", err)
	}
	return courses, nextCursor(res.header), nil
}

func (s *service) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	res, err := s.call(ctx, epGetCourse, callOptions{pathArgs: []any{courseID}})
	if err != nil {
		return nil, err
	}

	var course Course
	if err := json.Unmarshal(res.body, &course); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	return &course, nil
}

func (s *service) CreateCourse(ctx context.Context, accountID string, fields CourseFields) (*Course, error) {
	res, err := s.call(ctx, epCreateCourse, callOptions{
		pathArgs: []any{accountID},
		form:     fields.form(),
	})
	if err != nil {
		return nil, err
	}

	var course Course
	if err := json.Unmarshal(res.body, &course); err != nil {
		return nil, fmt.Errorf("decode created course: %w", err)
	}
	return &course, nil
}

func (s *service) UpdateCourse(ctx context.Context, courseID string, fields CourseFields) (*Course, error) {
	res, err := s.call(ctx, epUpdateCourse, callOptions{
		pathArgs: []any{courseID},
		form:     fields.form(),
	})
	if err != nil {
		return nil, err
	}

	var course Course
	if err := json.Unmarshal(res.body, &course); err != nil {
		return nil, fmt.Errorf("decode updated course: %w", err)
	}
	return &course, nil
}

// DeleteCourse issues the destroy event. The event=delete parameter is always
// first in the query string; Canvas also accepts event=conclude which this
// client deliberately does not expose.
func (s *service) DeleteCourse(ctx context.Context, courseID string) (*Ack, error) {
	res, err := s.call(ctx, epDeleteCourse, callOptions{
		pathArgs: []any{courseID},
		rawQuery: "event=delete",
	})
	if err != nil {
		return nil, err
	}

	var ack Ack
	if err := json.Unmarshal(res.body, &ack); err != nil {
		return nil, fmt.Errorf("decode delete ack: %w", err)
	}
	return &ack, nil
}

func (s *service) GetCourseSettings(ctx context.Context, courseID string) (*CourseSettings, error) {
	res, err := s.call(ctx, epGetCourseSettings, callOptions{pathArgs: []any{courseID}})
	if err != nil {
		return nil, err
	}

	var settings CourseSettings
	if err := json.Unmarshal(res.body, &settings); err != nil {
		return nil, fmt.Errorf("decode course settings: %w", err)
	}
	return &settings, nil
}

func (s *service) UpdateCourseSettings(ctx context.Context, courseID string, fields SettingsFields) (*CourseSettings, error) {
	res, err := s.call(ctx, epUpdateCourseSettings, callOptions{
		pathArgs: []any{courseID},
		form:     fields.form(),
	})
	if err != nil {
		return nil, err
	}

	var settings CourseSettings
	if err := json.Unmarshal(res.body, &settings); err != nil {
		return nil, fmt.Errorf("decode course settings: %w", err)
	}
	return &settings, nil
}

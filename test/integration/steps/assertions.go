package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should not exist$`, theResponseFieldShouldNotExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
}

// registerDatabaseSteps registers database state assertions.
func registerDatabaseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the table "([^"]*)" should have (\d+) rows?$`, theTableShouldHaveRows)
	ctx.Step(`^the table "([^"]*)" should have (\d+) rows? where "([^"]*)" is "([^"]*)"$`, theTableShouldHaveRowsWhere)
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	expected = tc.expand(expected)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

// theResponseFieldShouldBe compares a dotted field path. Values that parse
// as decimals on both sides compare numerically, so "1000" matches "1000.00".
func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	expected = tc.expand(expected)
	actual := fmt.Sprintf("%v", value)
	if actual == expected {
		return nil
	}

	want, wantErr := decimal.NewFromString(expected)
	got, gotErr := decimal.NewFromString(actual)
	if wantErr == nil && gotErr == nil && want.Equal(got) {
		return nil
	}

	return fmt.Errorf("field '%s' expected '%s', got '%s'. Body: %s", field, expected, actual, string(tc.responseBody))
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.responseField(field)
	return err
}

func theResponseFieldShouldNotExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, err := tc.responseField(field); err == nil {
		return fmt.Errorf("field '%s' should not be in response", field)
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	var items []any
	if value != nil {
		var ok bool
		if items, ok = value.([]any); !ok {
			return fmt.Errorf("field '%s' is not an array", field)
		}
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

// responseField walks a dotted path such as "properties.0.net_income".
func (tc *TestContext) responseField(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}

func theTableShouldHaveRows(ctx context.Context, table string, expected int) error {
	return countRows(ctx, table, expected, "", "")
}

func theTableShouldHaveRowsWhere(ctx context.Context, table string, expected int, column, value string) error {
	return countRows(ctx, table, expected, column, value)
}

func countRows(ctx context.Context, table string, expected int, column, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	model, ok := tc.db.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	query := tc.db.DbConn.WithContext(ctx).Model(model)
	if column != "" {
		query = query.Where(fmt.Sprintf("%s = ?", column), tc.expand(value))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count != int64(expected) {
		return fmt.Errorf("table %s expected %d rows, got %d", table, expected, count)
	}
	return nil
}

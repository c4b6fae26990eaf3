package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

var fixturePlaceholderRe = regexp.MustCompile(`\{\{(account|category|envelope)_id:([^}]+)\}\}`)

// replacePlaceholders substitutes {{access_token}}, {{last_id}} and fixture
// references like {{envelope_id:Groceries}} in paths and request bodies.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)

	return fixturePlaceholderRe.ReplaceAllStringFunc(content, func(match string) string {
		parts := fixturePlaceholderRe.FindStringSubmatch(match)
		name := parts[2]
		var lookup map[string]uuid.UUID
		switch parts[1] {
		case "account":
			lookup = t.accountIDs
		case "category":
			lookup = t.categoryIDs
		case "envelope":
			lookup = t.envelopeIDs
		}
		if id, ok := lookup[name]; ok {
			return id.String()
		}
		return match
	})
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil, "")
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload, "application/json")
}

// iUploadTheCSVBelow posts the doc string as a multipart CSV import for a
// seeded account.
func (t *testContext) iUploadTheCSVBelow(path, accountName string, csv *godog.DocString) error {
	accountID, ok := t.accountIDs[accountName]
	if !ok {
		return fmt.Errorf("account %q was not seeded", accountName)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("accountId", accountID.String()); err != nil {
		return err
	}
	part, err := writer.CreateFormFile("file", "import.csv")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(part, csv.Content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return t.executeRequest(http.MethodPost, t.replacePlaceholders(path), buf.Bytes(), writer.FormDataContentType())
}

func (t *testContext) executeRequest(method, path string, payload []byte, contentType string) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &apiResponse{status: resp.StatusCode}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = decoded

	if id, ok := decoded["id"].(string); ok {
		t.lastID = id
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expected {
		return fmt.Errorf("expected status %d, got %d (body: %v)",
			expected, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field %q: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	value := getFieldValue(body, t.replacePlaceholders(field))
	if value == nil {
		return fmt.Errorf("field %q not found in response: %v", field, body)
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, t.replacePlaceholders(field)) == nil {
		return fmt.Errorf("field %q not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeEmpty(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	value := getFieldValue(body, t.replacePlaceholders(field))
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		if len(v) != 0 {
			return fmt.Errorf("field %q expected empty, got %v", field, v)
		}
	case []any:
		if len(v) != 0 {
			return fmt.Errorf("field %q expected empty, got %v", field, v)
		}
	default:
		return fmt.Errorf("field %q is not a collection: %v", field, v)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.countRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q, got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := t.countRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q with criteria %v, got %d",
			quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) countRows(table string, criteria map[string]any) (int, error) {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.Conn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(slicePtr.Interface()).Error; err != nil {
		return 0, err
	}
	return slicePtr.Elem().Len(), nil
}

// getFieldValue walks a dot-separated path through a decoded JSON value.
// Numeric path segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	current := object
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		if current == nil {
			return nil
		}
		if index, err := strconv.Atoi(segment); err == nil {
			arr, ok := current.([]any)
			if !ok || index >= len(arr) {
				return nil
			}
			current = arr[index]
			continue
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[segment]
	}
	return current
}

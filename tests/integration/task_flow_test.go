package integration

import (
	"net/http"
	"testing"
)

func TestTaskLifecycle(t *testing.T) {
	app := setupApp(t)
	session := app.newSession(t, "tasks@example.com")

	// Minimal create falls back to defaults.
	rec := app.request("POST", "/api/tasks/create", `{"title":"Buy milk"}`, session)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	task := parseJSON(t, rec)["data"].(map[string]interface{})
	if task["title"] != "Buy milk" {
		t.Errorf("expected title 'Buy milk', got %v", task["title"])
	}
	if task["status"] != "pending" {
		t.Errorf("expected status pending, got %v", task["status"])
	}
	if task["priority"] != float64(2) {
		t.Errorf("expected priority 2, got %v", task["priority"])
	}
	if task["category"] != nil {
		t.Errorf("expected null category, got %v", task["category"])
	}
	if _, ok := task["userId"]; ok {
		t.Error("serialized task must not expose userId")
	}
	id := task["id"].(float64)

	// Partial update touches only the supplied fields.
	rec = app.request("POST", "/api/tasks/update",
		`{"id":`+jsonNumber(id)+`,"status":"completed","deadline":"2026-09-15"}`, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	task = parseJSON(t, rec)["data"].(map[string]interface{})
	if task["status"] != "completed" {
		t.Errorf("expected status completed, got %v", task["status"])
	}
	if task["title"] != "Buy milk" {
		t.Errorf("title should be untouched, got %v", task["title"])
	}
	if task["deadline"] == nil {
		t.Error("expected a deadline after update")
	}

	// Empty deadline clears it again.
	rec = app.request("POST", "/api/tasks/update", `{"id":`+jsonNumber(id)+`,"deadline":""}`, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear deadline failed: %d %s", rec.Code, rec.Body.String())
	}
	task = parseJSON(t, rec)["data"].(map[string]interface{})
	if task["deadline"] != nil {
		t.Errorf("expected cleared deadline, got %v", task["deadline"])
	}

	// Delete and verify the list is empty.
	rec = app.request("POST", "/api/tasks/delete", `{"id":`+jsonNumber(id)+`}`, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/tasks", "", session)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	if tasks := parseJSON(t, rec)["data"].([]interface{}); len(tasks) != 0 {
		t.Errorf("expected empty task list, got %d", len(tasks))
	}
}

func TestTaskCategoryAssignment(t *testing.T) {
	app := setupApp(t)
	session := app.newSession(t, "tasks@example.com")

	rec := app.request("POST", "/api/categories/create", `{"name":"Work","color":"#336699"}`, session)
	if rec.Code != http.StatusCreated {
		t.Fatalf("category create failed: %d %s", rec.Code, rec.Body.String())
	}
	categoryID := parseJSON(t, rec)["data"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/tasks/create",
		`{"title":"Report","categoryId":`+jsonNumber(categoryID)+`}`, session)
	if rec.Code != http.StatusCreated {
		t.Fatalf("task create failed: %d %s", rec.Code, rec.Body.String())
	}
	task := parseJSON(t, rec)["data"].(map[string]interface{})
	category := task["category"].(map[string]interface{})
	if category["name"] != "Work" || category["color"] != "#336699" {
		t.Errorf("expected embedded category object, got %v", category)
	}
	taskID := task["id"].(float64)

	// Null categoryId detaches the task.
	rec = app.request("POST", "/api/tasks/update",
		`{"id":`+jsonNumber(taskID)+`,"categoryId":null}`, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("detach failed: %d %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, rec)["data"].(map[string]interface{})["category"]; got != nil {
		t.Errorf("expected detached task, got category %v", got)
	}

	// Reattach, then delete the category: the task survives with a null
	// category.
	rec = app.request("POST", "/api/tasks/update",
		`{"id":`+jsonNumber(taskID)+`,"categoryId":`+jsonNumber(categoryID)+`}`, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("reattach failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/categories/delete", `{"id":`+jsonNumber(categoryID)+`}`, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("category delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/tasks", "", session)
	tasks := parseJSON(t, rec)["data"].([]interface{})
	if len(tasks) != 1 {
		t.Fatalf("expected the task to survive, got %d tasks", len(tasks))
	}
	if got := tasks[0].(map[string]interface{})["category"]; got != nil {
		t.Errorf("expected null category after deletion, got %v", got)
	}
}

func TestTaskValidationErrors(t *testing.T) {
	app := setupApp(t)
	session := app.newSession(t, "tasks@example.com")

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing_title", `{}`, "title"},
		{"blank_title", `{"title":"   "}`, "title"},
		{"bad_status", `{"title":"X","status":"done"}`, "status"},
		{"bad_deadline", `{"title":"X","deadline":"whenever"}`, "deadline"},
		{"foreign_category", `{"title":"X","categoryId":9999}`, "categoryId"},
		{"embedded_category", `{"title":"X","category":{"id":1}}`, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.request("POST", "/api/tasks/create", tc.body, session)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
			}
			errs := parseJSON(t, rec)["errors"].(map[string]interface{})
			if _, ok := errs[tc.field]; !ok {
				t.Errorf("expected an error for %s, got %v", tc.field, errs)
			}
		})
	}

	// Update without an id.
	rec := app.request("POST", "/api/tasks/update", `{"title":"X"}`, session)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestTaskOwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	alice := app.newSession(t, "alice@example.com")
	bob := app.newSession(t, "bob@example.com")

	rec := app.request("POST", "/api/tasks/create", `{"title":"Secret"}`, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	id := parseJSON(t, rec)["data"].(map[string]interface{})["id"].(float64)

	// Bob sees nothing and cannot touch Alice's task.
	rec = app.request("GET", "/api/tasks", "", bob)
	if tasks := parseJSON(t, rec)["data"].([]interface{}); len(tasks) != 0 {
		t.Errorf("expected empty list for bob, got %d", len(tasks))
	}
	if got := app.request("POST", "/api/tasks/update", `{"id":`+jsonNumber(id)+`,"title":"Hijack"}`, bob); got.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign update, got %d", got.Code)
	}
	if got := app.request("POST", "/api/tasks/delete", `{"id":`+jsonNumber(id)+`}`, bob); got.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign delete, got %d", got.Code)
	}

	// Alice still has her task untouched.
	rec = app.request("GET", "/api/tasks", "", alice)
	tasks := parseJSON(t, rec)["data"].([]interface{})
	if len(tasks) != 1 || tasks[0].(map[string]interface{})["title"] != "Secret" {
		t.Errorf("alice's task should be intact, got %v", tasks)
	}
}

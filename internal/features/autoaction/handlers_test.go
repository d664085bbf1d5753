package autoaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-casework/internal/features/casefile"
	"go-casework/internal/features/client"
	"go-casework/internal/features/messaging"
	"go-casework/internal/features/notification"
	"go-casework/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockClients struct {
	client *client.Client
	err    error
}

func (m *mockClients) FindByID(ctx context.Context, id string) (*client.Client, error) {
	return m.client, m.err
}

type mockCases struct {
	caseDoc *casefile.Case
	status  casefile.CaseStatus
	err     error
}

func (m *mockCases) FindByID(ctx context.Context, id string) (*casefile.Case, error) {
	if m.caseDoc == nil {
		return nil, errors.New("not found")
	}
	return m.caseDoc, m.err
}

func (m *mockCases) UpdateStatus(ctx context.Context, id string, status casefile.CaseStatus) error {
	m.status = status
	if m.caseDoc != nil {
		m.caseDoc.Status = status
	}
	return m.err
}

type mockMessages struct {
	smsTo   string
	emailTo string
	err     error
}

func (m *mockMessages) SendSMS(ctx context.Context, caseID, clientID, phone, body string) (*messaging.Message, error) {
	m.smsTo = phone
	return &messaging.Message{Recipient: phone, Body: body}, m.err
}

func (m *mockMessages) SendEmail(ctx context.Context, caseID, clientID, email, subject, body string) (*messaging.Message, error) {
	m.emailTo = email
	return &messaging.Message{Recipient: email, Body: body}, m.err
}

type mockNotes struct {
	noteID  string
	content string
	err     error
}

func (m *mockNotes) CreateSystemNote(ctx context.Context, caseID, content string) (string, error) {
	m.content = content
	return m.noteID, m.err
}

func (m *mockNotes) LatestNoteID(ctx context.Context, caseID string) (string, error) {
	return m.noteID, m.err
}

type mockTasks struct {
	taskID string
	noteID string
	due    time.Time
	err    error
}

func (m *mockTasks) CreateFollowUp(ctx context.Context, caseID, noteID, title, description string, due time.Time) (string, error) {
	m.noteID = noteID
	m.due = due
	return m.taskID, m.err
}

type mockAppointments struct {
	apptID string
	at     time.Time
	err    error
}

func (m *mockAppointments) Schedule(ctx context.Context, caseID, clientID string, at time.Time, location, purpose string) (string, error) {
	m.at = at
	return m.apptID, m.err
}

type mockUsers struct {
	supervisor *user.User
	err        error
}

func (m *mockUsers) FindSupervisor(ctx context.Context) (*user.User, error) {
	return m.supervisor, m.err
}

type mockNotifier struct {
	notified primitive.ObjectID
	message  string
	err      error
}

func (m *mockNotifier) Notify(ctx context.Context, userID primitive.ObjectID, caseID, title, message string, notifType notification.NotificationType) error {
	m.notified = userID
	m.message = message
	return m.err
}

func TestSendSMSMissingPhone(t *testing.T) {
	h := &sendSMSHandler{deps: HandlerDeps{
		Clients:  &mockClients{client: &client.Client{FirstName: "Ana"}},
		Messages: &mockMessages{},
	}}

	result := h.Execute(context.Background(),
		map[string]interface{}{"message": "Hi {caseId}"},
		&TriggerContext{CaseID: "7", ClientID: "c1"})

	if result.Success {
		t.Error("missing phone must fail")
	}
	if result.Error != "No phone number available" {
		t.Errorf("unexpected error: %q", result.Error)
	}
}

func TestSendSMSTemplatesMessage(t *testing.T) {
	msgs := &mockMessages{}
	h := &sendSMSHandler{deps: HandlerDeps{
		Clients:  &mockClients{client: &client.Client{Phone: "07700900000"}},
		Messages: msgs,
	}}

	result := h.Execute(context.Background(),
		map[string]interface{}{"message": "Case {caseId} update"},
		&TriggerContext{CaseID: "7", ClientID: "c1"})

	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if result.Recipient != "07700900000" || msgs.smsTo != "07700900000" {
		t.Errorf("sms went to %q", msgs.smsTo)
	}
}

func TestSendEmailMissingAddress(t *testing.T) {
	h := &sendEmailHandler{deps: HandlerDeps{
		Clients:  &mockClients{client: &client.Client{Phone: "07700900000"}},
		Messages: &mockMessages{},
	}}

	result := h.Execute(context.Background(), nil, &TriggerContext{ClientID: "c1"})

	if result.Success || result.Error != "No email address available" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestCreateNoteReturnsID(t *testing.T) {
	notes := &mockNotes{noteID: "n1"}
	h := &createNoteHandler{deps: HandlerDeps{Notes: notes}}

	result := h.Execute(context.Background(),
		map[string]interface{}{"content": "High debt case {caseId}"},
		&TriggerContext{CaseID: "7"})

	if !result.Success || result.NoteID != "n1" {
		t.Errorf("unexpected result: %+v", result)
	}
	if notes.content != "High debt case 7" {
		t.Errorf("content not templated: %q", notes.content)
	}
}

func TestCreateTaskDefaultDueDate(t *testing.T) {
	tasks := &mockTasks{taskID: "t1"}
	h := &createTaskHandler{deps: HandlerDeps{
		Notes: &mockNotes{noteID: "n1"},
		Tasks: tasks,
	}}

	result := h.Execute(context.Background(), map[string]interface{}{"title": "Follow up"},
		&TriggerContext{CaseID: "7"})

	if !result.Success || result.TaskID != "t1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if tasks.noteID != "n1" {
		t.Errorf("task should link the latest note, got %q", tasks.noteID)
	}

	want := time.Now().AddDate(0, 0, 7)
	if tasks.due.Sub(want) > time.Minute || want.Sub(tasks.due) > time.Minute {
		t.Errorf("due date should default to now+7d, got %v", tasks.due)
	}
}

func TestUpdateCaseStatus(t *testing.T) {
	cases := &mockCases{}
	h := &updateCaseStatusHandler{deps: HandlerDeps{Cases: cases}}

	result := h.Execute(context.Background(),
		map[string]interface{}{"status": "escalated"},
		&TriggerContext{CaseID: "7"})

	if !result.Success || result.Status != "escalated" {
		t.Errorf("unexpected result: %+v", result)
	}
	if cases.status != casefile.StatusEscalated {
		t.Errorf("case status not updated: %q", cases.status)
	}
}

func TestNotifySupervisorNoManager(t *testing.T) {
	h := &notifySupervisorHandler{deps: HandlerDeps{
		Users:  &mockUsers{err: errors.New("no documents")},
		Notify: &mockNotifier{},
	}}

	result := h.Execute(context.Background(), nil, &TriggerContext{CaseID: "7"})

	if result.Success || result.Error != "No supervisor found for centre" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestNotifySupervisor(t *testing.T) {
	supervisorID := primitive.NewObjectID()
	notifier := &mockNotifier{}
	h := &notifySupervisorHandler{deps: HandlerDeps{
		Users:  &mockUsers{supervisor: &user.User{ID: supervisorID, Role: user.RoleManager}},
		Notify: notifier,
	}}

	result := h.Execute(context.Background(),
		map[string]interface{}{"message": "Review case {caseId}"},
		&TriggerContext{CaseID: "7"})

	if !result.Success {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if notifier.notified != supervisorID {
		t.Error("notification went to the wrong user")
	}
	if notifier.message != "Review case 7" {
		t.Errorf("message not templated: %q", notifier.message)
	}
}

func TestScheduleAppointmentDefaultOffset(t *testing.T) {
	appts := &mockAppointments{apptID: "a1"}
	h := &scheduleAppointmentHandler{deps: HandlerDeps{Appointments: appts}}

	result := h.Execute(context.Background(), nil, &TriggerContext{CaseID: "7", ClientID: "c1"})

	if !result.Success || result.AppointmentID != "a1" {
		t.Fatalf("unexpected result: %+v", result)
	}

	want := time.Now().AddDate(0, 0, 7)
	if appts.at.Sub(want) > time.Minute || want.Sub(appts.at) > time.Minute {
		t.Errorf("appointment should default to now+7d, got %v", appts.at)
	}
}

func TestRunScript(t *testing.T) {
	h := &runScriptHandler{}

	result := h.Execute(context.Background(),
		map[string]interface{}{"script": `x := 1 + 2`},
		&TriggerContext{Event: "case_created"})
	if !result.Success {
		t.Errorf("valid script should run: %+v", result)
	}

	result = h.Execute(context.Background(),
		map[string]interface{}{"script": `this is not tengo`},
		&TriggerContext{})
	if result.Success {
		t.Error("broken script must fail, not panic")
	}
}

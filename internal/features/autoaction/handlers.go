package autoaction

import (
	"context"
	"fmt"
	"time"

	"go-casework/internal/features/casefile"
	"go-casework/internal/features/messaging"
	"go-casework/internal/features/notification"
	"go-casework/internal/features/user"

	"github.com/d5/tengo/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Narrow collaborator contracts, satisfied by the feature services.
type MessageSender interface {
	SendSMS(ctx context.Context, caseID, clientID, phone, body string) (*messaging.Message, error)
	SendEmail(ctx context.Context, caseID, clientID, email, subject, body string) (*messaging.Message, error)
}

type NoteCreator interface {
	CreateSystemNote(ctx context.Context, caseID, content string) (string, error)
	LatestNoteID(ctx context.Context, caseID string) (string, error)
}

type TaskCreator interface {
	CreateFollowUp(ctx context.Context, caseID, noteID, title, description string, due time.Time) (string, error)
}

type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id string, status casefile.CaseStatus) error
}

type AppointmentScheduler interface {
	Schedule(ctx context.Context, caseID, clientID string, at time.Time, location, purpose string) (string, error)
}

type SupervisorFinder interface {
	FindSupervisor(ctx context.Context) (*user.User, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID primitive.ObjectID, caseID, title, message string, notifType notification.NotificationType) error
}

// ActionHandler runs one action. Failures come back as result values;
// a handler never returns an error and must not panic by intent (the
// executor still recovers as a backstop).
type ActionHandler interface {
	Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult
}

type HandlerDeps struct {
	Clients      ClientReader
	Messages     MessageSender
	Notes        NoteCreator
	Tasks        TaskCreator
	Cases        StatusUpdater
	Appointments AppointmentScheduler
	Users        SupervisorFinder
	Notify       Notifier
}

// NewHandlerRegistry wires every known action type. A new action is a
// new entry here; the executor never changes.
func NewHandlerRegistry(deps HandlerDeps) map[ActionType]ActionHandler {
	return map[ActionType]ActionHandler{
		ActionSendSMS:             &sendSMSHandler{deps},
		ActionSendEmail:           &sendEmailHandler{deps},
		ActionCreateNote:          &createNoteHandler{deps},
		ActionCreateTask:          &createTaskHandler{deps},
		ActionUpdateCaseStatus:    &updateCaseStatusHandler{deps},
		ActionNotifySupervisor:    &notifySupervisorHandler{deps},
		ActionScheduleAppointment: &scheduleAppointmentHandler{deps},
		ActionRunScript:           &runScriptHandler{},
	}
}

func failed(t ActionType, msg string) ActionResult {
	return ActionResult{Type: t, Success: false, Error: msg}
}

func paramString(params map[string]interface{}, key string) string {
	if params == nil {
		return ""
	}
	s, _ := params[key].(string)
	return s
}

func paramInt(params map[string]interface{}, key string, fallback int) int {
	if params == nil {
		return fallback
	}
	switch n := params[key].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}

type sendSMSHandler struct{ deps HandlerDeps }

func (h *sendSMSHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	c, err := h.deps.Clients.FindByID(ctx, tc.ClientID)
	if err != nil || c == nil || c.Phone == "" {
		return failed(ActionSendSMS, "No phone number available")
	}

	body := Substitute(paramString(params, "message"), tc)
	if _, err := h.deps.Messages.SendSMS(ctx, tc.CaseID, tc.ClientID, c.Phone, body); err != nil {
		return failed(ActionSendSMS, err.Error())
	}
	return ActionResult{Type: ActionSendSMS, Success: true, Recipient: c.Phone}
}

type sendEmailHandler struct{ deps HandlerDeps }

func (h *sendEmailHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	c, err := h.deps.Clients.FindByID(ctx, tc.ClientID)
	if err != nil || c == nil || c.Email == "" {
		return failed(ActionSendEmail, "No email address available")
	}

	subject := Substitute(paramString(params, "subject"), tc)
	body := Substitute(paramString(params, "body"), tc)
	if _, err := h.deps.Messages.SendEmail(ctx, tc.CaseID, tc.ClientID, c.Email, subject, body); err != nil {
		return failed(ActionSendEmail, err.Error())
	}
	return ActionResult{Type: ActionSendEmail, Success: true, Recipient: c.Email}
}

type createNoteHandler struct{ deps HandlerDeps }

func (h *createNoteHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	content := Substitute(paramString(params, "content"), tc)
	noteID, err := h.deps.Notes.CreateSystemNote(ctx, tc.CaseID, content)
	if err != nil {
		return failed(ActionCreateNote, err.Error())
	}
	return ActionResult{Type: ActionCreateNote, Success: true, NoteID: noteID}
}

type createTaskHandler struct{ deps HandlerDeps }

func (h *createTaskHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	dueDays := paramInt(params, "dueDays", 7)
	due := time.Now().AddDate(0, 0, dueDays)

	title := Substitute(paramString(params, "title"), tc)
	description := Substitute(paramString(params, "description"), tc)

	// link to the case's most recent note; rule authors are expected to
	// order create_note before create_task, but an unlinked task beats
	// a failed one
	noteID, _ := h.deps.Notes.LatestNoteID(ctx, tc.CaseID)

	taskID, err := h.deps.Tasks.CreateFollowUp(ctx, tc.CaseID, noteID, title, description, due)
	if err != nil {
		return failed(ActionCreateTask, err.Error())
	}
	return ActionResult{Type: ActionCreateTask, Success: true, TaskID: taskID}
}

type updateCaseStatusHandler struct{ deps HandlerDeps }

func (h *updateCaseStatusHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	status := paramString(params, "status")
	if status == "" {
		return failed(ActionUpdateCaseStatus, "status parameter is required")
	}

	if err := h.deps.Cases.UpdateStatus(ctx, tc.CaseID, casefile.CaseStatus(status)); err != nil {
		return failed(ActionUpdateCaseStatus, err.Error())
	}
	return ActionResult{Type: ActionUpdateCaseStatus, Success: true, Status: status}
}

type notifySupervisorHandler struct{ deps HandlerDeps }

func (h *notifySupervisorHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	supervisor, err := h.deps.Users.FindSupervisor(ctx)
	if err != nil || supervisor == nil {
		return failed(ActionNotifySupervisor, "No supervisor found for centre")
	}

	message := Substitute(paramString(params, "message"), tc)
	title := paramString(params, "title")
	if title == "" {
		title = "Case requires attention"
	}

	err = h.deps.Notify.Notify(ctx, supervisor.ID, tc.CaseID, title, message,
		notification.NotificationTypeEscalation)
	if err != nil {
		return failed(ActionNotifySupervisor, err.Error())
	}
	return ActionResult{Type: ActionNotifySupervisor, Success: true, Recipient: supervisor.ID.Hex()}
}

type scheduleAppointmentHandler struct{ deps HandlerDeps }

func (h *scheduleAppointmentHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	daysFromNow := paramInt(params, "daysFromNow", 7)
	at := time.Now().AddDate(0, 0, daysFromNow)

	location := paramString(params, "location")
	purpose := Substitute(paramString(params, "purpose"), tc)

	apptID, err := h.deps.Appointments.Schedule(ctx, tc.CaseID, tc.ClientID, at, location, purpose)
	if err != nil {
		return failed(ActionScheduleAppointment, err.Error())
	}
	return ActionResult{Type: ActionScheduleAppointment, Success: true, AppointmentID: apptID}
}

// runScriptHandler evaluates a tengo script with a read-only copy of
// the dispatch context. Scripts observe, they do not mutate.
type runScriptHandler struct{}

func (h *runScriptHandler) Execute(ctx context.Context, params map[string]interface{}, tc *TriggerContext) ActionResult {
	source := paramString(params, "script")
	if source == "" {
		return failed(ActionRunScript, "script parameter is required")
	}

	script := tengo.NewScript([]byte(source))
	_ = script.Add("event", tc.Event)
	_ = script.Add("case_id", tc.CaseID)
	_ = script.Add("client_id", tc.ClientID)
	_ = script.Add("data", tc.Data)

	compiled, err := script.Compile()
	if err != nil {
		return failed(ActionRunScript, fmt.Sprintf("script compile failed: %v", err))
	}
	if err := compiled.RunContext(ctx); err != nil {
		return failed(ActionRunScript, fmt.Sprintf("script run failed: %v", err))
	}
	return ActionResult{Type: ActionRunScript, Success: true}
}

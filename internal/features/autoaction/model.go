package autoaction

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorGreaterThan Operator = "greater_than"
	OperatorLessThan    Operator = "less_than"
	OperatorContains    Operator = "contains"
	OperatorNotContains Operator = "not_contains"
)

type ActionType string

const (
	ActionSendSMS             ActionType = "send_sms"
	ActionSendEmail           ActionType = "send_email"
	ActionCreateNote          ActionType = "create_note"
	ActionCreateTask          ActionType = "create_task"
	ActionUpdateCaseStatus    ActionType = "update_case_status"
	ActionNotifySupervisor    ActionType = "notify_supervisor"
	ActionScheduleAppointment ActionType = "schedule_appointment"
	ActionRunScript           ActionType = "run_script"
)

type Condition struct {
	Operator Operator    `json:"operator" bson:"operator"`
	Value    interface{} `json:"value" bson:"value"`
}

type ActionSpec struct {
	Type   ActionType             `json:"type" bson:"type"`
	Params map[string]interface{} `json:"params,omitempty" bson:"params,omitempty"`
}

// Rule is one auto action: when trigger_event fires and every condition
// holds, the actions run in order. Nil conditions always match.
type Rule struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	CentreID          primitive.ObjectID   `json:"centre_id" bson:"centre_id"`
	Name              string               `json:"name" bson:"name"`
	Description       string               `json:"description,omitempty" bson:"description,omitempty"`
	TriggerEvent      string               `json:"trigger_event" bson:"trigger_event"`
	TriggerConditions map[string]Condition `json:"trigger_conditions,omitempty" bson:"trigger_conditions,omitempty"`
	Actions           []ActionSpec         `json:"actions" bson:"actions"`
	Priority          int                  `json:"priority" bson:"priority"`
	IsActive          bool                 `json:"is_active" bson:"is_active"`
	CreatedBy         string               `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at" bson:"updated_at"`
}

// TriggerContext carries everything one dispatch knows about the event.
// It is read-only for the duration of the dispatch.
type TriggerContext struct {
	Event    string                 `json:"event"`
	CaseID   string                 `json:"caseId,omitempty"`
	ClientID string                 `json:"clientId,omitempty"`
	UserID   string                 `json:"userId,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// ActionResult is the outcome of a single action. Failures are values,
// never panics or returned errors.
type ActionResult struct {
	Type          ActionType `json:"type" bson:"type"`
	Success       bool       `json:"success" bson:"success"`
	Error         string     `json:"error,omitempty" bson:"error,omitempty"`
	NoteID        string     `json:"noteId,omitempty" bson:"note_id,omitempty"`
	TaskID        string     `json:"taskId,omitempty" bson:"task_id,omitempty"`
	AppointmentID string     `json:"appointmentId,omitempty" bson:"appointment_id,omitempty"`
	Status        string     `json:"status,omitempty" bson:"status,omitempty"`
	Recipient     string     `json:"recipient,omitempty" bson:"recipient,omitempty"`
}

// ExecutionRecord is appended once per matched rule and never updated.
type ExecutionRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CentreID      primitive.ObjectID `json:"centre_id" bson:"centre_id"`
	RuleID        primitive.ObjectID `json:"rule_id" bson:"rule_id"`
	CaseID        string             `json:"case_id,omitempty" bson:"case_id,omitempty"`
	ActionResults []ActionResult     `json:"action_results" bson:"action_results"`
	ExecutedBy    string             `json:"executed_by,omitempty" bson:"executed_by,omitempty"`
	ExecutedAt    time.Time          `json:"executed_at" bson:"executed_at"`
}

// ExecutionLogEntry is the joined shape the log listing returns.
type ExecutionLogEntry struct {
	ExecutionRecord `bson:",inline"`
	RuleName        string `json:"rule_name" bson:"rule_name"`
	CaseReference   string `json:"case_reference,omitempty" bson:"case_reference,omitempty"`
	ClientName      string `json:"client_name,omitempty" bson:"client_name,omitempty"`
}

type ExecutedRule struct {
	RuleID   string         `json:"ruleId"`
	RuleName string         `json:"ruleName"`
	Actions  []ActionResult `json:"actions"`
}

type DispatchResult struct {
	ExecutedActions []ExecutedRule `json:"executedActions"`
}

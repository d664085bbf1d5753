package main

import (
	"context"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/config"
	"go-casework/internal/database"
	"go-casework/internal/features/autoaction"
	"go-casework/internal/features/casefile"
	"go-casework/internal/features/centre"
	"go-casework/internal/features/client"
	"go-casework/internal/features/user"
	"go-casework/internal/logger"
	"go-casework/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed populates a demo centre with users, clients, cases and a couple
// of auto action rules so a fresh install has something to click on.
func Seed(
	lc fx.Lifecycle,
	centreRepo centre.CentreRepository,
	userRepo user.UserRepository,
	clientRepo client.ClientRepository,
	caseRepo casefile.CaseRepository,
	ruleRepo autoaction.RuleRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("🌱 Seeding demo centre...")

				centreName := "Riverside Advice Centre"

				// Fixed ObjectID so repeated runs hit the same tenant.
				centreID, _ := primitive.ObjectIDFromHex("66f0a1b2c3d4e5f6a7b8c9d0")

				if existing, err := centreRepo.FindByID(ctx, centreID); err == nil {
					logger.Info("Centre exists, skipping seed", zap.String("centre", existing.Name))
					return
				}

				now := time.Now()
				ctr := centre.Centre{
					ID:        centreID,
					Name:      centreName,
					Slug:      utils.Slugify(centreName),
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := centreRepo.Create(ctx, &ctr); err != nil {
					logger.Fatal("Failed to create centre", zap.Error(err))
				}

				// Scope every following write to the demo centre.
				ctx = context.WithValue(ctx, common_models.CentreIDKey, centreID.Hex())

				manager := user.User{
					CentreID:     centreID,
					Name:         "Maria Okafor",
					Username:     "maria",
					Email:        "maria@riverside.example",
					Phone:        "+447700900001",
					PasswordHash: user.HashPassword("password"),
					Role:         user.RoleManager,
					Active:       true,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				adviser := user.User{
					CentreID:     centreID,
					Name:         "Tom Hendry",
					Username:     "tom",
					Email:        "tom@riverside.example",
					Phone:        "+447700900002",
					PasswordHash: user.HashPassword("password"),
					Role:         user.RoleAdviser,
					Active:       true,
					CreatedAt:    now.Add(time.Second),
					UpdatedAt:    now.Add(time.Second),
				}
				for _, u := range []*user.User{&manager, &adviser} {
					if err := userRepo.Create(ctx, u); err != nil {
						logger.Fatal("Failed to create user", zap.String("username", u.Username), zap.Error(err))
					}
					logger.Info("User created", zap.String("username", u.Username), zap.String("role", u.Role))
				}

				clients := []client.Client{
					{
						CentreID:          centreID,
						FirstName:         "Janet",
						LastName:          "Price",
						Phone:             "+447700900100",
						Email:             "janet.price@example.com",
						PreferredLanguage: "en",
						CreatedAt:         now,
						UpdatedAt:         now,
					},
					{
						CentreID:           centreID,
						FirstName:          "Samir",
						LastName:           "Haddad",
						Phone:              "+447700900101",
						PreferredLanguage:  "ar",
						Vulnerable:         true,
						VulnerabilityNotes: "Recently bereaved; prefers phone contact",
						CreatedAt:          now,
						UpdatedAt:          now,
					},
				}
				for i := range clients {
					if err := clientRepo.Create(ctx, &clients[i]); err != nil {
						logger.Fatal("Failed to create client", zap.Error(err))
					}
					logger.Info("Client created", zap.String("name", clients[i].DisplayName()))
				}

				cases := []casefile.Case{
					{
						CentreID:  centreID,
						ClientID:  clients[0].ID,
						Reference: "RAC-0001",
						Status:    casefile.StatusInProgress,
						Priority:  "normal",
						TotalDebt: 4200,
						DebtCount: 3,
						AdviserID: adviser.ID,
						Summary:   "Council tax arrears and two credit cards",
						CreatedAt: now,
						UpdatedAt: now,
					},
					{
						CentreID:  centreID,
						ClientID:  clients[1].ID,
						Reference: "RAC-0002",
						Status:    casefile.StatusNew,
						Priority:  "high",
						TotalDebt: 18500,
						DebtCount: 7,
						AdviserID: adviser.ID,
						Summary:   "Rent arrears, utilities and payday loans",
						CreatedAt: now,
						UpdatedAt: now,
					},
				}
				for i := range cases {
					if err := caseRepo.Create(ctx, &cases[i]); err != nil {
						logger.Fatal("Failed to create case", zap.Error(err))
					}
					logger.Info("Case created", zap.String("reference", cases[i].Reference))
				}

				rules := []autoaction.Rule{
					{
						CentreID:     centreID,
						Name:         "Escalate high debt cases",
						Description:  "New cases over £15,000 go straight to a manager",
						TriggerEvent: casefile.EventCaseCreated,
						TriggerConditions: map[string]autoaction.Condition{
							"total_debt": {Operator: autoaction.OperatorGreaterThan, Value: 15000},
						},
						Actions: []autoaction.ActionSpec{
							{Type: autoaction.ActionUpdateCaseStatus, Params: map[string]interface{}{
								"status": string(casefile.StatusEscalated),
							}},
							{Type: autoaction.ActionNotifySupervisor, Params: map[string]interface{}{
								"title":   "High debt case opened",
								"message": "Case {caseId} opened with debt above £15,000",
							}},
						},
						Priority:  10,
						IsActive:  true,
						CreatedBy: manager.ID.Hex(),
						CreatedAt: now,
						UpdatedAt: now,
					},
					{
						CentreID:     centreID,
						Name:         "Welcome note on new cases",
						TriggerEvent: casefile.EventCaseCreated,
						Actions: []autoaction.ActionSpec{
							{Type: autoaction.ActionCreateNote, Params: map[string]interface{}{
								"content": "Case opened on {date}. First contact due within 5 working days.",
							}},
							{Type: autoaction.ActionCreateTask, Params: map[string]interface{}{
								"title":    "First contact with client",
								"due_days": 5,
							}},
						},
						Priority:  1,
						IsActive:  true,
						CreatedBy: manager.ID.Hex(),
						CreatedAt: now,
						UpdatedAt: now,
					},
					{
						CentreID:     centreID,
						Name:         "SMS appointment reminders",
						TriggerEvent: "appointment_reminder",
						Actions: []autoaction.ActionSpec{
							{Type: autoaction.ActionSendSMS, Params: map[string]interface{}{
								"message": "Reminder: you have an appointment with Riverside Advice Centre on {date}.",
							}},
						},
						Priority:  1,
						IsActive:  true,
						CreatedBy: manager.ID.Hex(),
						CreatedAt: now,
						UpdatedAt: now,
					},
				}
				for i := range rules {
					if err := ruleRepo.Create(ctx, &rules[i]); err != nil {
						logger.Fatal("Failed to create rule", zap.Error(err))
					}
					logger.Info("Rule created", zap.String("rule", rules[i].Name))
				}

				logger.Info("✅ Seeding complete",
					zap.String("centre", centreName),
					zap.String("login", "maria / password"))
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			centre.NewCentreRepository,
			user.NewUserRepository,
			client.NewClientRepository,
			casefile.NewCaseRepository,
			autoaction.NewRuleRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}

package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/thurgood/internal/clock"
	"github.com/viant/thurgood/internal/idgen"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/dao/criteria"
	"go.uber.org/zap"
)

// Step names a saga step
type Step string

const (
	StepAccount Step = "account"
	StepLogger  Step = "logger"
	StepBind    Step = "bind"
)

// StepError reports the failing saga step
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("provisioning step %v failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Request represents provisioning input taken from the job being created
type Request struct {
	LoggerName   string
	UserID       string
	Email        string
	PapertrailID string
}

// AccountResult is produced by the account step
type AccountResult struct {
	Account *model.LoggerAccount
	Created bool
}

// LoggerResult is produced by the logger step
type LoggerResult struct {
	Account *AccountResult
	Logger  *model.Logger
}

// Binder attaches the provisioned logger to its owner
type Binder func(ctx context.Context, logger *model.Logger) error

// Service runs the provisioning saga
type Service struct {
	accounts dao.Service[string, model.LoggerAccount]
	loggers  dao.Service[string, model.Logger]
	provider Provider
	logger   *zap.Logger
}

// Provision runs account, logger and bind steps
func (s *Service) Provision(ctx context.Context, request *Request, bind Binder) (*LoggerResult, error) {
	account, err := s.account(ctx, request)
	if err != nil {
		return nil, &StepError{Step: StepAccount, Err: err}
	}
	result, err := s.createLogger(ctx, request, account)
	if err != nil {
		return nil, &StepError{Step: StepLogger, Err: err}
	}
	if bind != nil {
		if err = bind(ctx, result.Logger); err != nil {
			return result, &StepError{Step: StepBind, Err: err}
		}
	}
	s.logger.Info("logger provisioned",
		zap.String("logger", result.Logger.Name),
		zap.String("loggerId", result.Logger.ID),
		zap.String("accountId", account.Account.ID),
		zap.Bool("accountCreated", account.Created))
	return result, nil
}

func (s *Service) account(ctx context.Context, request *Request) (*AccountResult, error) {
	if request.UserID == "" {
		return nil, &model.ValidationError{Field: "userId"}
	}
	existing, err := s.lookupAccount(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &AccountResult{Account: existing}, nil
	}
	account := &model.LoggerAccount{
		ID:           idgen.New(),
		Name:         request.UserID,
		Email:        request.Email,
		PapertrailID: request.PapertrailID,
		CreatedAt:    clock.Now(),
	}
	if account.PapertrailID == "" {
		account.PapertrailID = account.Name
	}
	response, err := s.provider.CreateAccount(ctx, &AccountRequest{ID: account.PapertrailID, Name: account.Name, Email: account.Email, Plan: "free"})
	if err != nil {
		if !errors.Is(err, ErrRefused) {
			return nil, err
		}
		// the account may have been created concurrently
		if existing, lErr := s.lookupAccount(ctx, request.UserID); lErr == nil && existing != nil {
			s.logger.Info("remote account refused, using local account", zap.String("account", existing.Name))
			return &AccountResult{Account: existing}, nil
		}
		return nil, err
	}
	account.PapertrailID = response.ID
	account.PapertrailAPIToken = response.APIToken
	if err = s.accounts.Insert(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to insert account %v: %w", account.Name, err)
	}
	return &AccountResult{Account: account, Created: true}, nil
}

func (s *Service) lookupAccount(ctx context.Context, name string) (*model.LoggerAccount, error) {
	ret, err := s.accounts.FindOne(ctx, criteria.AccountByName(name))
	if errors.Is(err, dao.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lookup account %v: %w", name, err)
	}
	return ret, nil
}

func (s *Service) createLogger(ctx context.Context, request *Request, account *AccountResult) (*LoggerResult, error) {
	if request.LoggerName == "" {
		return nil, &model.ValidationError{Field: "logger"}
	}
	papertrailID := request.PapertrailID
	if papertrailID == "" {
		papertrailID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	response, err := s.provider.CreateLogger(ctx, &LoggerRequest{ID: papertrailID, Name: request.LoggerName, AccountID: account.Account.PapertrailID})
	if err != nil {
		return nil, err
	}
	logger := &model.Logger{
		ID:              idgen.New(),
		Name:            request.LoggerName,
		LoggerAccountID: account.Account.ID,
		PapertrailID:    response.ID,
		SyslogHostname:  response.Syslog.Hostname,
		SyslogPort:      response.Syslog.Port,
		CreatedAt:       clock.Now(),
	}
	if err = s.loggers.Insert(ctx, logger); err != nil {
		return nil, fmt.Errorf("failed to insert logger %v: %w", logger.Name, err)
	}
	return &LoggerResult{Account: account, Logger: logger}, nil
}

// New creates provisioning service
func New(accounts dao.Service[string, model.LoggerAccount], loggers dao.Service[string, model.Logger], provider Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{accounts: accounts, loggers: loggers, provider: provider, logger: logger.Named("provision")}
}

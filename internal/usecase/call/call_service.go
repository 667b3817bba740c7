package call

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/internal/domain/entities"
	"github.com/callops-team/call-assistant/internal/domain/repositories"
	"github.com/callops-team/call-assistant/internal/infrastructure/cache"
	"github.com/callops-team/call-assistant/internal/usecase/transcript"
	"github.com/callops-team/call-assistant/pkg/retell"
)

// webhookLookupRetries bounds how long a webhook handler waits for the call
// record written by StartCall. Vendor webhooks can arrive before the insert
// commits.
const webhookLookupRetries = 4

// transcriptCachePrefix namespaces reprocessed transcripts in the cache
const transcriptCachePrefix = "transcript:"

// defaultInitialMessage opens the call when the agent has no active prompt
const defaultInitialMessage = "Hello! How can I help you today?"

// initialMessageLimit caps how much prompt content seeds the opening message
const initialMessageLimit = 200

// VoicePlatform is the slice of the vendor API the call flow needs
type VoicePlatform interface {
	CreateAgent(ctx context.Context, agentName, voiceID, prompt, webhookURL string) (*retell.Agent, error)
	CreateWebCall(ctx context.Context, agentID string, metadata map[string]string) (*retell.WebCall, error)
	GetCall(ctx context.Context, callID string) (retell.CallDetails, error)
}

// PromptResolver is the slice of the prompt service call_started needs to
// associate a call with the agent's active prompt
type PromptResolver interface {
	GetActivePromptForAgent(ctx context.Context, agentID string) (*entities.ConversationPrompt, error)
}

// Ensure CallService implements Service interface
var _ Service = (*CallService)(nil)

// CallService handles call lifecycle business logic
type CallService struct {
	callRepo      repositories.CallRepository
	platform      VoicePlatform
	prompts       PromptResolver
	processor     *transcript.Processor
	store         cache.Store
	logger        *zap.Logger
	voiceID       string
	webhookURL    string
	transcriptTTL time.Duration
}

// NewCallService creates a new call service
func NewCallService(
	callRepo repositories.CallRepository,
	platform VoicePlatform,
	prompts PromptResolver,
	processor *transcript.Processor,
	store cache.Store,
	logger *zap.Logger,
	voiceID string,
	webhookURL string,
	transcriptTTL time.Duration,
) *CallService {
	return &CallService{
		callRepo:      callRepo,
		platform:      platform,
		prompts:       prompts,
		processor:     processor,
		store:         store,
		logger:        logger,
		voiceID:       voiceID,
		webhookURL:    webhookURL,
		transcriptTTL: transcriptTTL,
	}
}

// StartCallInput represents input for starting a driver call
type StartCallInput struct {
	DriverName  string
	PhoneNumber string
	LoadNumber  string
	AgentPrompt string
	AgentLogic  string
}

// StartCallOutput carries the identifiers the caller needs to join the call
type StartCallOutput struct {
	CallID      string
	AgentID     string
	AccessToken string
	Status      entities.CallStatus
}

// AgentConfig seeds the agent at call start from its active prompt
type AgentConfig struct {
	InitialMessage string     `json:"initial_message"`
	PromptID       *uuid.UUID `json:"prompt_id"`
}

// WebhookResult is the acknowledgement body returned to the vendor for a
// processed webhook delivery
type WebhookResult struct {
	Status           string                        `json:"status"`
	CallID           string                        `json:"call_id,omitempty"`
	EventType        string                        `json:"event_type,omitempty"`
	AgentConfig      *AgentConfig                  `json:"agent_config,omitempty"`
	ProcessedSummary *entities.ProcessedTranscript `json:"processed_summary,omitempty"`
}

// CallStatusOutput reports local and vendor views of a call's status
type CallStatusOutput struct {
	CallID       string
	Status       entities.CallStatus
	VendorStatus string
	StartedAt    *time.Time
	EndedAt      *time.Time
}

// StartCall creates a single-use agent configured with the request's prompt
// and opens a web call on it. The record is persisted before returning so
// the call_started webhook has something to find.
func (s *CallService) StartCall(ctx context.Context, input StartCallInput) (*StartCallOutput, error) {
	agentName := fmt.Sprintf("Driver Call Agent - %s", input.LoadNumber)
	prompt := buildDriverPrompt(input)

	agent, err := s.platform.CreateAgent(ctx, agentName, s.voiceID, prompt, s.webhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	webCall, err := s.platform.CreateWebCall(ctx, agent.AgentID, map[string]string{
		"driver_name": input.DriverName,
		"load_number": input.LoadNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create web call: %w", err)
	}

	record := entities.NewCallRecord(webCall.CallID, agent.AgentID, entities.CallTypeWeb)
	record.Status = entities.CallStatusRegistered
	record.StartedAt = nil
	record.DriverName = input.DriverName
	record.LoadNumber = input.LoadNumber
	record.PhoneNumber = input.PhoneNumber
	record.LLMID = agent.LLMID
	record.AccessToken = webCall.AccessToken

	if err := s.callRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist call record: %w", err)
	}

	s.logger.Info("web call started",
		zap.String("call_id", webCall.CallID),
		zap.String("agent_id", agent.AgentID),
		zap.String("load_number", input.LoadNumber),
	)

	return &StartCallOutput{
		CallID:      webCall.CallID,
		AgentID:     agent.AgentID,
		AccessToken: webCall.AccessToken,
		Status:      record.Status,
	}, nil
}

// HandleWebhookEvent routes a verified webhook event by type and builds the
// acknowledgement returned to the vendor. Unknown event types are logged and
// acknowledged as ignored so new vendor events never fail deliveries.
func (s *CallService) HandleWebhookEvent(ctx context.Context, event *entities.WebhookEvent) (*WebhookResult, error) {
	callID := event.StringField("call_id")
	if callID == "" {
		return nil, entities.ErrMissingCallID
	}

	switch event.EventType {
	case entities.WebhookEventCallStarted:
		return s.handleCallStarted(ctx, event, callID)
	case entities.WebhookEventCallEnded:
		return s.handleCallEnded(ctx, event, callID)
	case entities.WebhookEventCallAnalyzed:
		return s.handleCallAnalyzed(ctx, event, callID)
	default:
		s.logger.Info("ignoring unknown webhook event",
			zap.String("event_type", event.EventType),
			zap.String("call_id", callID),
		)
		return &WebhookResult{Status: "ignored", EventType: event.EventType}, nil
	}
}

func (s *CallService) handleCallStarted(ctx context.Context, event *entities.WebhookEvent, callID string) (*WebhookResult, error) {
	var data entities.CallStartedData
	if err := event.DecodeData(&data); err != nil {
		return nil, err
	}

	record, err := s.findWithRetry(ctx, callID)
	if err != nil && !errors.Is(err, entities.ErrCallNotFound) {
		return nil, err
	}

	now := time.Now()
	if record == nil {
		// Call was started outside this backend; register it anyway.
		record = entities.NewCallRecord(callID, data.AgentID, entities.CallType(data.CallType))
		if data.CallType == "" {
			record.CallType = entities.CallTypePhone
		}
		record.PhoneNumber = data.CustomerNumber
	}
	record.Status = entities.CallStatusActive
	record.StartedAt = &now

	// The agent's active prompt drives the opening message. A lookup failure
	// must not fail the delivery; the call proceeds with the default greeting.
	activePrompt, err := s.prompts.GetActivePromptForAgent(ctx, record.AgentID)
	if err != nil {
		s.logger.Warn("active prompt lookup failed",
			zap.String("call_id", callID),
			zap.String("agent_id", record.AgentID),
			zap.Error(err),
		)
		activePrompt = nil
	}
	if activePrompt != nil {
		record.PromptID = &activePrompt.ID
	}

	if err := s.callRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save call record: %w", err)
	}

	s.logger.Info("call started", zap.String("call_id", callID), zap.String("agent_id", record.AgentID))
	return &WebhookResult{
		Status:      "call_started",
		CallID:      callID,
		AgentConfig: agentConfigForPrompt(activePrompt),
	}, nil
}

func (s *CallService) handleCallEnded(ctx context.Context, event *entities.WebhookEvent, callID string) (*WebhookResult, error) {
	record, err := s.findWithRetry(ctx, callID)
	if err != nil {
		if !errors.Is(err, entities.ErrCallNotFound) {
			return nil, err
		}
		record = entities.NewCallRecord(callID, event.StringField("agent_id"), entities.CallTypePhone)
	}

	if t := event.StringField("transcript"); t != "" {
		record.RawTranscript = t
	}
	record.MarkAsCompleted()

	if err := s.callRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save call record: %w", err)
	}

	s.logger.Info("call ended", zap.String("call_id", callID))
	return &WebhookResult{Status: "call_ended", CallID: callID}, nil
}

func (s *CallService) handleCallAnalyzed(ctx context.Context, event *entities.WebhookEvent, callID string) (*WebhookResult, error) {
	var data entities.CallAnalysisData
	if err := event.DecodeData(&data); err != nil {
		return nil, err
	}

	record, err := s.findWithRetry(ctx, callID)
	if err != nil {
		if !errors.Is(err, entities.ErrCallNotFound) {
			return nil, err
		}
		record = entities.NewCallRecord(callID, event.StringField("agent_id"), entities.CallTypePhone)
	}

	processed := s.processor.Process(data.Transcript, data.CallAnalysis)
	record.AttachAnalysis(data.Transcript, data.CallAnalysis, data.RecordingURL, processed.Summary)

	if err := s.callRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save call record: %w", err)
	}

	// Stored analysis supersedes anything cached from an earlier state.
	if err := s.store.Delete(ctx, transcriptCachePrefix+callID); err != nil {
		s.logger.Warn("failed to invalidate transcript cache", zap.String("call_id", callID), zap.Error(err))
	}

	s.logger.Info("call analyzed",
		zap.String("call_id", callID),
		zap.String("sentiment", processed.Sentiment),
		zap.Int("key_points", len(processed.KeyPoints)),
	)
	return &WebhookResult{Status: "call_analyzed", CallID: callID, ProcessedSummary: processed}, nil
}

// GetCall retrieves a call record. Calls the vendor for calls this backend
// never saw (e.g. started from the vendor dashboard); those are returned
// without being persisted.
func (s *CallService) GetCall(ctx context.Context, callID string) (*entities.CallRecord, error) {
	record, err := s.callRepo.FindByCallID(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call record: %w", err)
	}
	if record != nil {
		return record, nil
	}

	details, err := s.platform.GetCall(ctx, callID)
	if err != nil {
		return nil, entities.ErrCallNotFound
	}

	return recordFromDetails(callID, details, s.processor), nil
}

// GetCallStatus reports the call's status. When the local record is still
// open but the vendor reports the call ended, the record is refreshed first.
func (s *CallService) GetCallStatus(ctx context.Context, callID string) (*CallStatusOutput, error) {
	record, err := s.callRepo.FindByCallID(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call record: %w", err)
	}
	if record == nil {
		return nil, entities.ErrCallNotFound
	}

	vendorStatus := ""
	if !record.IsTerminal() {
		details, err := s.platform.GetCall(ctx, callID)
		if err != nil {
			s.logger.Warn("vendor status check failed", zap.String("call_id", callID), zap.Error(err))
		} else {
			vendorStatus = details.String("call_status")
			if vendorStatus == "ended" || vendorStatus == "error" {
				if record, err = s.SyncCall(ctx, callID); err != nil {
					return nil, err
				}
			}
		}
	}

	return &CallStatusOutput{
		CallID:       record.CallID,
		Status:       record.Status,
		VendorStatus: vendorStatus,
		StartedAt:    record.StartedAt,
		EndedAt:      record.EndedAt,
	}, nil
}

// SyncCall pulls the vendor's call object and refreshes the local record
// with its transcript, analysis and terminal status.
func (s *CallService) SyncCall(ctx context.Context, callID string) (*entities.CallRecord, error) {
	record, err := s.callRepo.FindByCallID(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call record: %w", err)
	}
	if record == nil {
		return nil, entities.ErrCallNotFound
	}

	details, err := s.platform.GetCall(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor call: %w", err)
	}

	rawTranscript := details.String("transcript")
	analysis := details.Analysis()
	vendorStatus := details.String("call_status")

	switch vendorStatus {
	case "ended":
		processed := s.processor.Process(rawTranscript, analysis)
		record.AttachAnalysis(rawTranscript, analysis, details.String("recording_url"), processed.Summary)
	case "error":
		record.MarkAsFailed()
	default:
		if rawTranscript != "" {
			record.RawTranscript = rawTranscript
		}
	}

	if err := s.callRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save call record: %w", err)
	}

	s.logger.Info("call synced",
		zap.String("call_id", callID),
		zap.String("vendor_status", vendorStatus),
		zap.String("status", string(record.Status)),
	)
	return record, nil
}

// GetProcessedTranscript reprocesses the stored raw transcript. Results are
// cached; the cache is invalidated whenever new analysis lands.
func (s *CallService) GetProcessedTranscript(ctx context.Context, callID string) (*entities.ProcessedTranscript, error) {
	key := transcriptCachePrefix + callID

	if cached, ok, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("transcript cache read failed", zap.String("call_id", callID), zap.Error(err))
	} else if ok {
		var processed entities.ProcessedTranscript
		if err := json.Unmarshal([]byte(cached), &processed); err == nil {
			return &processed, nil
		}
	}

	record, err := s.callRepo.FindByCallID(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call record: %w", err)
	}
	if record == nil {
		return nil, entities.ErrCallNotFound
	}
	if record.RawTranscript == "" {
		return nil, entities.ErrTranscriptNotReady
	}

	processed := s.processor.Process(record.RawTranscript, record.Analysis())

	if encoded, err := json.Marshal(processed); err == nil {
		if err := s.store.Set(ctx, key, string(encoded), s.transcriptTTL); err != nil {
			s.logger.Warn("transcript cache write failed", zap.String("call_id", callID), zap.Error(err))
		}
	}

	return processed, nil
}

// ListCallsByAgent lists recent calls handled by an agent
func (s *CallService) ListCallsByAgent(ctx context.Context, agentID string, limit int) ([]entities.CallRecord, error) {
	records, err := s.callRepo.ListByAgentID(ctx, agentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return records, nil
}

// findWithRetry looks up a call record, retrying with exponential backoff.
// Webhook deliveries race the insert in StartCall.
func (s *CallService) findWithRetry(ctx context.Context, callID string) (*entities.CallRecord, error) {
	var record *entities.CallRecord

	operation := func() error {
		found, err := s.callRepo.FindByCallID(ctx, callID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if found == nil {
			return entities.ErrCallNotFound
		}
		record = found
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newLookupBackOff(), webhookLookupRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return record, nil
}

func newLookupBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

// agentConfigForPrompt derives the call-opening agent configuration from the
// agent's active prompt. Without one the agent opens with a stock greeting.
func agentConfigForPrompt(prompt *entities.ConversationPrompt) *AgentConfig {
	if prompt == nil {
		return &AgentConfig{InitialMessage: defaultInitialMessage}
	}
	return &AgentConfig{
		InitialMessage: truncateRunes(prompt.Content, initialMessageLimit),
		PromptID:       &prompt.ID,
	}
}

// truncateRunes shortens s to at most n codepoints without splitting a rune
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// buildDriverPrompt combines the caller-supplied prompt and conversation
// logic with the dispatch context for this driver and load.
func buildDriverPrompt(input StartCallInput) string {
	prompt := fmt.Sprintf(
		"You are a logistics dispatch assistant calling driver %s about load %s.\n\n%s",
		input.DriverName, input.LoadNumber, input.AgentPrompt,
	)
	if input.AgentLogic != "" {
		prompt += fmt.Sprintf("\n\nConversation logic:\n%s", input.AgentLogic)
	}
	return prompt
}

// recordFromDetails builds a transient record for a call only the vendor
// knows about. Not persisted.
func recordFromDetails(callID string, details retell.CallDetails, processor *transcript.Processor) *entities.CallRecord {
	record := entities.NewCallRecord(callID, details.String("agent_id"), entities.CallType(details.String("call_type")))
	record.RawTranscript = details.String("transcript")
	record.RecordingURL = details.String("recording_url")

	switch details.String("call_status") {
	case "ended":
		if record.RawTranscript != "" {
			processed := processor.Process(record.RawTranscript, details.Analysis())
			record.ProcessedSummary = processed.Summary
		}
		record.Status = entities.CallStatusCompleted
	case "error":
		record.Status = entities.CallStatusFailed
	case "registered":
		record.Status = entities.CallStatusRegistered
	}

	return record
}

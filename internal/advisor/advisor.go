// Package advisor runs one chat turn: it consults the language oracle, moves
// the dialogue state machine forward and performs the search or
// recommendation step the machine asks for.
package advisor

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chative-fare-advisor/server/internal/agent/graph/conversations"
	"github.com/Chative-fare-advisor/server/internal/agent/model"
	"github.com/Chative-fare-advisor/server/internal/bundle"
	errx "github.com/Chative-fare-advisor/server/internal/core/error"
	"github.com/Chative-fare-advisor/server/internal/dialogue"
	"github.com/Chative-fare-advisor/server/internal/session"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

var offTopicKeywords = []string{"pet", "dog", "cat", "food", "meal", "wifi", "wheelchair", "minor", "visa"}

// followUp marks a message as a question about the current recommendation.
var followUp = regexp.MustCompile(`(?i)can i|what if|how much|refund`)

// Deps are the collaborators of the Service.
type Deps struct {
	Store     *session.Store
	Machine   *dialogue.Machine
	Extractor model.SlotExtractor
	Answerer  model.BundleAnswerer
	Flights   model.FlightSearcher
	Messages  *conversations.MessagesManager
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	store     *session.Store
	machine   *dialogue.Machine
	extractor model.SlotExtractor
	answerer  model.BundleAnswerer
	flights   model.FlightSearcher
	messages  *conversations.MessagesManager
	now       func() time.Time
}

func New(d Deps) (*Service, error) {
	switch {
	case d.Store == nil:
		return nil, fmt.Errorf("advisor: session store is nil")
	case d.Machine == nil:
		return nil, fmt.Errorf("advisor: dialogue machine is nil")
	case d.Extractor == nil:
		return nil, fmt.Errorf("advisor: slot extractor is nil")
	case d.Answerer == nil:
		return nil, fmt.Errorf("advisor: bundle answerer is nil")
	case d.Flights == nil:
		return nil, fmt.Errorf("advisor: flight searcher is nil")
	case d.Messages == nil:
		return nil, fmt.Errorf("advisor: messages manager is nil")
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:     d.Store,
		machine:   d.Machine,
		extractor: d.Extractor,
		answerer:  d.Answerer,
		flights:   d.Flights,
		messages:  d.Messages,
		now:       now,
	}, nil
}

// Handle processes one user message and returns the assistant reply.
// Requests for the same conversation are applied one at a time.
func (s *Service) Handle(ctx context.Context, req model.ChatRequest) (*model.Reply, error) {
	id := strings.TrimSpace(req.ConversationID)
	if id == "" || strings.TrimSpace(req.Message) == "" {
		return nil, errx.BadRequest(errx.ErrMissingData, errx.MissingDataMessage)
	}
	log := logx.Conversation(id)

	if isOffTopic(req.Message) {
		log.Info().Str("input", req.Message).Msg("off-topic message redirected")
		return &model.Reply{Reply: dialogue.OffTopicText}, nil
	}

	sess, release := s.store.Acquire(id)
	defer release()

	today := s.now()
	update, err := s.extractor.Extract(ctx, model.ExtractInput{
		Today:   today,
		Topic:   sess.ActiveTopic,
		Slots:   sess.Slots,
		Message: req.Message,
		Recent:  s.messages.OracleContext(sess.History),
	})
	if err != nil {
		log.Warn().Err(errx.WrapOracle(err)).Str("topic", string(sess.ActiveTopic)).Msg("slot extraction failed, continuing with no update")
		update = &model.SlotUpdate{}
	}
	if update == nil {
		update = &model.SlotUpdate{}
	}

	if sess.HasRecommendation() && followUp.MatchString(req.Message) {
		update.Intent = model.IntentQuestion
	}
	if update.Intent == model.IntentQuestion && sess.HasRecommendation() {
		return s.answer(ctx, sess, req.Message, &log)
	}

	dialogue.NormalizeDates(update, today)
	sess.Slots.Merge(update.SlotSet)
	sess.AppendTurn(model.RoleUser, req.Message)
	s.messages.RecordUser(ctx, id, req.Message)

	reply, err := s.advance(ctx, sess, &log)
	if err != nil {
		return nil, err
	}
	s.messages.RecordAssistant(ctx, id, reply.Reply)
	return reply, nil
}

// Close drops a conversation. It reports whether the conversation existed.
func (s *Service) Close(conversationID string) bool {
	return s.store.Close(strings.TrimSpace(conversationID))
}

// Transcript returns the mirrored turns of a conversation.
func (s *Service) Transcript(ctx context.Context, conversationID string) ([]model.Turn, error) {
	id := strings.TrimSpace(conversationID)
	if id == "" {
		return nil, errx.BadRequest(errx.ErrMissingData, errx.MissingDataMessage)
	}
	return s.messages.Transcript(ctx, id)
}

// Sessions returns the number of live conversations.
func (s *Service) Sessions() int {
	return s.store.Len()
}

func (s *Service) answer(ctx context.Context, sess *model.Session, question string, log *zerolog.Logger) (*model.Reply, error) {
	tier := sess.LastRecommendation
	rules, ok := bundle.RulesOf(tier)
	if !ok {
		log.Warn().Str("tier", string(tier)).Msg("no rules text for recommended tier")
	}

	text, err := s.answerer.Answer(ctx, model.AnswerInput{Question: question, Tier: tier, Rules: rules})
	if err != nil {
		log.Error().Err(err).Str("tier", string(tier)).Msg("bundle question answering failed")
		return nil, errx.WrapOracle(err)
	}

	sess.AppendTurn(model.RoleUser, question)
	sess.AppendTurn(model.RoleAssistant, text)
	s.messages.RecordUser(ctx, sess.ConversationID, question)
	s.messages.RecordAssistant(ctx, sess.ConversationID, text)
	log.Debug().Str("tier", string(tier)).Msg("bundle question answered")
	return &model.Reply{Reply: text}, nil
}

func (s *Service) advance(ctx context.Context, sess *model.Session, log *zerolog.Logger) (*model.Reply, error) {
	step := s.machine.Next(sess.Phase, &sess.Slots)
	log.Debug().
		Str("phase", string(sess.Phase)).
		Stringer("action", step.Action).
		Msg("dialogue step")

	switch step.Action {
	case dialogue.ActionSearch:
		return s.search(ctx, sess, step.Query, log)
	case dialogue.ActionRecommend:
		return s.recommend(sess, log)
	default:
		return ask(sess, step.Question.Topic, step.Question.Text), nil
	}
}

func (s *Service) search(ctx context.Context, sess *model.Session, q model.SearchQuery, log *zerolog.Logger) (*model.Reply, error) {
	offers, err := s.flights.Search(ctx, q)
	if err != nil {
		// slots stay as they are so the same search is retried next turn
		log.Error().Err(err).
			Str("origin", q.Origin).
			Str("destination", q.Destination).
			Msg("flight search failed")
		return ask(sess, sess.ActiveTopic, dialogue.SearchErrorText), nil
	}
	if len(offers) == 0 {
		log.Info().
			Str("origin", q.Origin).
			Str("destination", q.Destination).
			Str("departure_date", q.DepartureDate.String()).
			Msg("no flights found")
		sess.Slots.DepartureDate = nil
		nf := dialogue.NoFlights()
		return ask(sess, nf.Topic, nf.Text), nil
	}

	sess.ReplaceFlights(bundle.Tag(offers))
	sess.EnterPreferences()
	log.Info().Int("offers", len(offers)).Msg("flights cached, collecting preferences")

	next, ok := dialogue.NextPreferenceQuestion(&sess.Slots)
	if !ok {
		return s.recommend(sess, log)
	}
	return ask(sess, next.Topic, dialogue.FlightsFoundIntro+next.Text), nil
}

func (s *Service) recommend(sess *model.Session, log *zerolog.Logger) (*model.Reply, error) {
	rec, err := bundle.Recommend(sess.FlightCache, sess.Slots)
	if err != nil {
		return nil, fmt.Errorf("recommend for %s: %w", sess.ConversationID, err)
	}
	sess.LastRecommendation = rec.Tier

	ranking := zerolog.Arr()
	for _, r := range rec.Ranking {
		ranking.Dict(zerolog.Dict().
			Str("tier", string(r.Tier)).
			Str("price", r.Offer.Price.String()).
			Float64("score", r.Score))
	}
	log.Info().
		Str("tier", string(rec.Tier)).
		Array("ranking", ranking).
		Msg("bundle recommended")

	reply := ask(sess, model.TopicUnknown, dialogue.RecommendationText(rec.Tier))
	reply.Recommendation = buildPayload(rec)
	return reply, nil
}

func ask(sess *model.Session, topic model.Topic, text string) *model.Reply {
	sess.Ask(topic, text)
	return &model.Reply{Reply: text}
}

func isOffTopic(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range offTopicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

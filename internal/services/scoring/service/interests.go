package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	perr "scorebox/internal/platform/errors"
	"scorebox/internal/services/scoring/domain"
)

// interestsKey prefixes persisted interest lists
const interestsKeyPrefix = "i:"

// clientsInterests validates the arguments, records the client count in the
// telemetry "nclients" key and returns a map from stringified client id to
// its interest list. Store failures are hard here: they propagate so the
// transport reports an internal error instead of a partial result
func (s *Service) clientsInterests(ctx context.Context, env *domain.Envelope, tel domain.Telemetry) (any, int, error) {
	args, errs := domain.ParseInterestsArgs(env.Arguments, s.now())
	if errs != nil {
		return errs, http.StatusUnprocessableEntity, nil
	}

	tel["nclients"] = len(args.ClientIDs)

	out := make(map[string][]string, len(args.ClientIDs))
	for _, id := range args.ClientIDs {
		interests, err := s.getInterests(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		out[strconv.FormatInt(id, 10)] = interests
	}

	return out, http.StatusOK, nil
}

// getInterests reads one client's interests through the hard store path.
// An absent or empty value is an empty list, not an error
func (s *Service) getInterests(ctx context.Context, id int64) ([]string, error) {
	if s.kv == nil {
		return nil, perr.Unavailablef("kv store is not configured")
	}
	raw, ok, err := s.kv.Get(ctx, interestsKeyPrefix+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []string{}, nil
	}
	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStore, "malformed interests payload for client %d", id)
	}
	return interests, nil
}

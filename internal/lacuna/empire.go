package lacuna

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

type loginResult struct {
	SessionID string `json:"session_id"`
}

type statusResult struct {
	Empire struct {
		Name    string        `json:"name"`
		Planets orderedObject `json:"planets"`
	} `json:"empire"`
}

type pendingBuildJSON struct {
	SecondsRemaining flexInt `json:"seconds_remaining"`
}

type buildingJSON struct {
	Name         string            `json:"name"`
	Level        flexInt           `json:"level"`
	URL          string            `json:"url"`
	PendingBuild *pendingBuildJSON `json:"pending_build"`
}

type buildingsResult struct {
	Buildings orderedObject `json:"buildings"`
}

// Login opens a session for the empire
func (c *Client) Login(ctx context.Context, empire, password string) error {
	var res loginResult
	if err := c.Call(ctx, "empire", "login", []any{empire, password, c.apiKey}, &res); err != nil {
		return fmt.Errorf("login as %s: %w", empire, err)
	}
	if res.SessionID == "" {
		return fmt.Errorf("login as %s: no session id returned", empire)
	}

	c.sessionID = res.SessionID
	c.logger.Info("logged in", zap.String("empire", empire))
	return nil
}

// Logout closes the current session, if any
func (c *Client) Logout(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}
	err := c.Call(ctx, "empire", "logout", []any{c.sessionID}, nil)
	c.sessionID = ""
	return err
}

func (c *Client) session() (string, error) {
	if c.sessionID == "" {
		return "", ErrNotLoggedIn
	}
	return c.sessionID, nil
}

// Colonies lists the empire's colonies in the order the server returns them
func (c *Client) Colonies(ctx context.Context) ([]models.ColonyRef, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	var res statusResult
	if err := c.Call(ctx, "empire", "get_status", []any{session}, &res); err != nil {
		return nil, err
	}

	colonies := make([]models.ColonyRef, 0, len(res.Empire.Planets))
	for _, field := range res.Empire.Planets {
		var name string
		if err := json.Unmarshal(field.Value, &name); err != nil {
			return nil, fmt.Errorf("planet %s: %w", field.Key, err)
		}
		colonies = append(colonies, models.ColonyRef{ID: field.Key, Name: name})
	}

	return colonies, nil
}

// Structures fetches a colony's buildings in the order the server returns them
func (c *Client) Structures(ctx context.Context, colonyID string) ([]models.Structure, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	var res buildingsResult
	if err := c.Call(ctx, "body", "get_buildings", []any{session, colonyID}, &res); err != nil {
		return nil, err
	}

	structures := make([]models.Structure, 0, len(res.Buildings))
	for _, field := range res.Buildings {
		var b buildingJSON
		if err := json.Unmarshal(field.Value, &b); err != nil {
			return nil, fmt.Errorf("building %s: %w", field.Key, err)
		}

		s := models.Structure{
			ID:    field.Key,
			Name:  b.Name,
			Level: int(b.Level),
			Kind:  models.Kind(b.URL),
		}
		if b.PendingBuild != nil {
			s.Pending = &models.PendingBuild{SecondsRemaining: int(b.PendingBuild.SecondsRemaining)}
		}
		structures = append(structures, s)
	}

	return structures, nil
}

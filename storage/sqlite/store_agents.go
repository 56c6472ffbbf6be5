package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hina-lin/sustainet-inc/agent"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
)

// PutAgentDefinition creates or replaces a definition by name.
func (s *Store) PutAgentDefinition(ctx context.Context, def agent.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("agent name is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO agent_definitions (
		   name, provider, model_name, description, instruction, temperature
		 ) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
		   provider = excluded.provider,
		   model_name = excluded.model_name,
		   description = excluded.description,
		   instruction = excluded.instruction,
		   temperature = excluded.temperature`,
		name,
		def.Provider,
		def.ModelName,
		def.Description,
		def.Instruction,
		def.Temperature,
	)
	if err != nil {
		return fmt.Errorf("put agent definition: %w", err)
	}
	return nil
}

// AgentDefinition looks up a definition by name.
func (s *Store) AgentDefinition(ctx context.Context, name string) (agent.Definition, error) {
	if err := ctx.Err(); err != nil {
		return agent.Definition{}, err
	}
	if err := s.ready(); err != nil {
		return agent.Definition{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return agent.Definition{}, fmt.Errorf("agent name is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT name, provider, model_name, description, instruction, temperature
		   FROM agent_definitions
		  WHERE name = ?`,
		name,
	)

	var def agent.Definition
	err := row.Scan(&def.Name, &def.Provider, &def.ModelName, &def.Description, &def.Instruction, &def.Temperature)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return agent.Definition{}, apperrors.New(apperrors.CodeAgentNotFound, "agent "+name+" not found")
		}
		return agent.Definition{}, fmt.Errorf("get agent definition: %w", err)
	}
	return def, nil
}

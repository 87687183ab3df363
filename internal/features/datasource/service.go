package datasource

import (
	"context"
	"fmt"
	"sync"

	"go-travelops/internal/common/apperr"
	"go-travelops/internal/connectors"
	"go-travelops/internal/database"
	"go-travelops/internal/features/builder"
	"go-travelops/pkg/utils"

	"go.uber.org/zap"
)

type DataSourceService interface {
	CreateDataSource(ctx context.Context, ds *DataSource) error
	GetDataSource(ctx context.Context, id string) (*DataSource, error)
	ListDataSources(ctx context.Context) ([]DataSource, error)
	UpdateDataSource(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteDataSource(ctx context.Context, id string) error
	TestDataSource(ctx context.Context, id string) error

	// Fetch resolves a source name against the registry (falling back to
	// the fixture datasets) and runs the query with the report's date
	// range and filters.
	Fetch(ctx context.Context, source string, rng builder.DateRange, filters map[string]any) ([]map[string]any, error)
}

type DataSourceServiceImpl struct {
	repo    DataSourceRepository
	fixture connectors.Connector
	mongo   connectors.Connector
	logger  *zap.Logger

	mu     sync.Mutex
	active map[string]connectors.Connector
}

func NewDataSourceService(repo DataSourceRepository, db *database.MongodbDB, logger *zap.Logger) DataSourceService {
	return &DataSourceServiceImpl{
		repo:    repo,
		fixture: connectors.NewFixtureConnector(),
		mongo:   connectors.NewMongoConnector(db.DB),
		logger:  logger,
		active:  make(map[string]connectors.Connector),
	}
}

func (s *DataSourceServiceImpl) CreateDataSource(ctx context.Context, ds *DataSource) error {
	if ds.Name == "" || ds.Type == "" {
		return fmt.Errorf("name and type are required")
	}

	// Widgets reference sources by name, so names are normalized to the
	// snake_case form the builder uses ("Staff Performance" ->
	// "staff_performance").
	ds.Name = utils.Slugify(ds.Name)

	if ds.IsActive {
		connector, err := s.buildConnector(ctx, ds)
		if err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		if err := connector.TestConnection(ctx); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
	}

	return s.repo.Create(ctx, ds)
}

func (s *DataSourceServiceImpl) GetDataSource(ctx context.Context, id string) (*DataSource, error) {
	return s.repo.Get(ctx, id)
}

func (s *DataSourceServiceImpl) ListDataSources(ctx context.Context) ([]DataSource, error) {
	return s.repo.List(ctx)
}

func (s *DataSourceServiceImpl) UpdateDataSource(ctx context.Context, id string, updates map[string]interface{}) error {
	err := s.repo.Update(ctx, id, updates)
	if err == nil {
		s.mu.Lock()
		delete(s.active, id)
		s.mu.Unlock()
	}
	return err
}

func (s *DataSourceServiceImpl) DeleteDataSource(ctx context.Context, id string) error {
	s.mu.Lock()
	if connector, exists := s.active[id]; exists {
		connector.Disconnect(ctx)
		delete(s.active, id)
	}
	s.mu.Unlock()

	return s.repo.Delete(ctx, id)
}

func (s *DataSourceServiceImpl) TestDataSource(ctx context.Context, id string) error {
	ds, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	connector, err := s.connectorFor(ctx, ds)
	if err != nil {
		return err
	}
	return connector.TestConnection(ctx)
}

func (s *DataSourceServiceImpl) Fetch(ctx context.Context, source string, rng builder.DateRange, filters map[string]any) ([]map[string]any, error) {
	if source == "" {
		return nil, apperr.Validation("widget has no data source configured")
	}

	connector := s.resolve(ctx, source)

	resp, err := connector.Query(ctx, connectors.QueryRequest{
		Source:    source,
		DateStart: rng.Start,
		DateEnd:   rng.End,
		Filters:   filters,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// resolve picks the connector for a source name: a registered active source
// wins, otherwise the built-in fixture datasets answer.
func (s *DataSourceServiceImpl) resolve(ctx context.Context, source string) connectors.Connector {
	ds, err := s.repo.FindByName(ctx, source)
	if err != nil || ds == nil || !ds.IsActive {
		return s.fixture
	}

	connector, err := s.connectorFor(ctx, ds)
	if err != nil {
		s.logger.Warn("data source unavailable, falling back to fixture data",
			zap.String("source", source), zap.Error(err))
		return s.fixture
	}
	return connector
}

func (s *DataSourceServiceImpl) connectorFor(ctx context.Context, ds *DataSource) (connectors.Connector, error) {
	id := ds.ID.Hex()

	s.mu.Lock()
	if connector, exists := s.active[id]; exists {
		s.mu.Unlock()
		return connector, nil
	}
	s.mu.Unlock()

	connector, err := s.buildConnector(ctx, ds)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active[id] = connector
	s.mu.Unlock()
	return connector, nil
}

func (s *DataSourceServiceImpl) buildConnector(ctx context.Context, ds *DataSource) (connectors.Connector, error) {
	switch ds.Type {
	case DataSourceTypeInternal:
		return s.mongo, nil
	case DataSourceTypeFixture:
		return s.fixture, nil
	case DataSourceTypePostgreSQL, DataSourceTypeMySQL:
		connector := connectors.NewExternalDBConnector(ds.Type)
		if err := connector.Connect(ctx, ds.Config); err != nil {
			return nil, err
		}
		return connector, nil
	default:
		return nil, fmt.Errorf("unsupported data source type: %s", ds.Type)
	}
}

package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/filestore"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/metrics"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/pubsub"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, opts SettingsServiceOptions) *SettingsService {
	t.Helper()
	store, err := filestore.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return NewSettingsService(
		store.Versions(),
		store.Audit(),
		store.Published(),
		pubsub.NewSettingsPubSub(zerolog.Nop()),
		metrics.New(prometheus.NewRegistry()),
		zerolog.Nop(),
		opts,
	)
}

func validContent() domain.ConfigurationDocument {
	doc := domain.DefaultDocument()
	doc.Currencies.Rates = map[string]float64{"USD": 39.6}
	doc.Shipping.Types = []domain.ShippingType{
		{ID: "air-uae", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000},
	}
	return doc
}

func invalidContent() domain.ConfigurationDocument {
	doc := validContent()
	doc.Currencies.Rates["USD"] = 0
	return doc
}

func TestCreateVersion_StoresDraftWithDiffAndAudit(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	version, err := svc.CreateVersion(ctx, "amina", validContent(), "initial rates")
	require.NoError(t, err)
	assert.NotEmpty(t, version.ID)
	assert.Equal(t, domain.VersionStatusDraft, version.Status)
	assert.Equal(t, "amina", version.Author)
	assert.NotEmpty(t, version.Diffs, "diff against the empty published document")

	log, err := svc.GetAuditLog(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, domain.AuditVersionCreated, log[0].Type)
	assert.Equal(t, "amina", log[0].User)
}

func TestCreateVersion_AcceptsInvalidContent(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})

	version, err := svc.CreateVersion(context.Background(), "amina", invalidContent(), "broken")
	require.NoError(t, err, "drafts are never gated by validation")
	assert.Equal(t, domain.VersionStatusDraft, version.Status)
}

func TestListVersions_NewestFirst(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	first, err := svc.CreateVersion(ctx, "a", validContent(), "one")
	require.NoError(t, err)
	second, err := svc.CreateVersion(ctx, "a", validContent(), "two")
	require.NoError(t, err)

	versions, err := svc.ListVersions(ctx)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, second.ID, versions[0].ID)
	assert.Equal(t, first.ID, versions[1].ID)
}

func TestPublish_RoundTripsContent(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	content := validContent()
	version, err := svc.CreateVersion(ctx, "amina", content, "initial")
	require.NoError(t, err)

	published, issues, err := svc.Publish(ctx, version.ID, "amina")
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, domain.VersionStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	exported, err := svc.ExportPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, content, exported, "exported document equals published content exactly")
}

func TestPublish_UnknownVersion(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})

	_, _, err := svc.Publish(context.Background(), "missing", "amina")
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)
}

func TestPublish_BlockedByValidationErrorsWithoutMutatingState(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	version, err := svc.CreateVersion(ctx, "amina", invalidContent(), "broken")
	require.NoError(t, err)

	_, issues, err := svc.Publish(ctx, version.ID, "amina")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, issues)
	assert.Equal(t, "currencies.rates.USD", issues[0].Path)

	// Nothing was published and the version stayed a draft.
	exported, err := svc.ExportPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigurationDocument{}, exported)

	versions, err := svc.ListVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionStatusDraft, versions[0].Status)
}

func TestPublish_AuditCarriesCreationTimeDiff(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	version, err := svc.CreateVersion(ctx, "amina", validContent(), "initial")
	require.NoError(t, err)
	_, _, err = svc.Publish(ctx, version.ID, "moussa")
	require.NoError(t, err)

	log, err := svc.GetAuditLog(ctx)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, domain.AuditVersionPublished, log[0].Type)
	assert.Equal(t, "moussa", log[0].User)
	assert.Contains(t, log[0].Details, "diffs")
}

func TestRollback_CreatesNewPublishedVersion(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	original := validContent()
	v1, err := svc.CreateVersion(ctx, "amina", original, "v1")
	require.NoError(t, err)
	_, _, err = svc.Publish(ctx, v1.ID, "amina")
	require.NoError(t, err)

	changed := validContent()
	changed.Currencies.Rates["USD"] = 40.2
	v2, err := svc.CreateVersion(ctx, "amina", changed, "v2")
	require.NoError(t, err)
	_, _, err = svc.Publish(ctx, v2.ID, "amina")
	require.NoError(t, err)

	rolled, issues, err := svc.Rollback(ctx, v1.ID, "moussa")
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.NotEqual(t, v1.ID, rolled.ID, "rollback appends a new version")
	assert.Equal(t, domain.VersionStatusPublished, rolled.Status)
	assert.Equal(t, original, rolled.Content)

	exported, err := svc.ExportPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, exported)

	// History is append-only: three versions now.
	versions, err := svc.ListVersions(ctx)
	require.NoError(t, err)
	assert.Len(t, versions, 3)

	log, err := svc.GetAuditLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditVersionRollback, log[0].Type)
	assert.Equal(t, v1.ID, log[0].Details["rollbackOf"])
}

func TestRollback_UnknownVersion(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})

	_, _, err := svc.Rollback(context.Background(), "missing", "amina")
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)
}

func TestRollback_SkipsValidationByDefault(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	// An invalid draft can still be rolled back to when validation on
	// rollback is off: trusted because such content was once publishable.
	draft, err := svc.CreateVersion(ctx, "amina", invalidContent(), "bad")
	require.NoError(t, err)

	rolled, _, err := svc.Rollback(ctx, draft.ID, "amina")
	require.NoError(t, err)
	assert.Equal(t, domain.VersionStatusPublished, rolled.Status)
}

func TestRollback_GateEnabledBlocksInvalidContent(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{ValidateOnRollback: true})
	ctx := context.Background()

	draft, err := svc.CreateVersion(ctx, "amina", invalidContent(), "bad")
	require.NoError(t, err)

	_, issues, err := svc.Rollback(ctx, draft.ID, "amina")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, issues)

	exported, err := svc.ExportPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigurationDocument{}, exported, "blocked rollback changes nothing")
}

func TestImportContent_CreatesDraftNeverPublishes(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	content := validContent()
	version, err := svc.ImportContent(ctx, "amina", &content)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionStatusDraft, version.Status)

	exported, err := svc.ExportPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigurationDocument{}, exported)

	log, err := svc.GetAuditLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditImport, log[0].Type)
}

func TestImportContent_MissingContent(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})

	_, err := svc.ImportContent(context.Background(), "amina", nil)
	assert.ErrorIs(t, err, domain.ErrMissingContent)
}

func TestValidateVersion_UnknownID(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})

	_, err := svc.ValidateVersion(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)
}

func TestValidateVersion_EmptyIDValidatesPublished(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()

	issues, err := svc.ValidateVersion(ctx, "")
	require.NoError(t, err)
	// The never-published empty document trips the range rules.
	assert.True(t, domain.HasErrors(issues))
}

func TestConcurrentCreateVersion_NoLostUpdates(t *testing.T) {
	svc := newService(t, SettingsServiceOptions{})
	ctx := context.Background()
	const writers = 10

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateVersion(ctx, "amina", validContent(), fmt.Sprintf("draft %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	versions, err := svc.ListVersions(ctx)
	require.NoError(t, err)
	assert.Len(t, versions, writers)

	log, err := svc.GetAuditLog(ctx)
	require.NoError(t, err)
	assert.Len(t, log, writers, "one audit entry per concurrent create")
}

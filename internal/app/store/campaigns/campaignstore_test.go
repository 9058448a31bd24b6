package campaignstore_test

import (
	"errors"
	"testing"
	"time"

	campaignstore "github.com/dalemusser/heartfund/internal/app/store/campaigns"
	"github.com/dalemusser/heartfund/internal/domain/models"
	"github.com/dalemusser/heartfund/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validCampaign() models.Campaign {
	return models.Campaign{
		Name:         "Clean Water",
		Description:  "Wells for the region",
		Organizer:    "Water Org",
		Category:     []string{"water", "health"},
		TargetAmount: 10000,
		StartDate:    time.Now().UTC(),
		IsActive:     true,
		ShowDonors:   true,
		CreatedBy:    primitive.NewObjectID(),
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campaignstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := validCampaign()
	in.CollectedAmount = 999 // must be ignored

	c, err := store.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.ID.IsZero() {
		t.Error("expected ID to be generated")
	}
	if c.CollectedAmount != 0 {
		t.Errorf("collected = %d, want 0 on create", c.CollectedAmount)
	}

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != in.Name {
		t.Errorf("name = %q, want %q", got.Name, in.Name)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campaignstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name   string
		mutate func(*models.Campaign)
	}{
		{"missing name", func(c *models.Campaign) { c.Name = "" }},
		{"missing organizer", func(c *models.Campaign) { c.Organizer = "" }},
		{"empty category", func(c *models.Campaign) { c.Category = nil }},
		{"zero target", func(c *models.Campaign) { c.TargetAmount = 0 }},
		{"negative target", func(c *models.Campaign) { c.TargetAmount = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCampaign()
			tt.mutate(&in)
			_, err := store.Create(ctx, in)
			if !errors.Is(err, campaignstore.ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestStore_Apply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campaignstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, err := store.Create(ctx, validCampaign())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Apply(ctx, c.ID, campaignstore.Update{
		Name:         "Clean Water 2.0",
		Description:  c.Description,
		Organizer:    c.Organizer,
		Category:     []string{"water"},
		TargetAmount: 20000,
		StartDate:    c.StartDate,
		IsActive:     false,
		ShowDonors:   true,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Clean Water 2.0" {
		t.Errorf("name = %q, want updated", got.Name)
	}
	if got.TargetAmount != 20000 {
		t.Errorf("target = %d, want 20000", got.TargetAmount)
	}
	if got.IsActive {
		t.Error("expected campaign to be inactive")
	}
	if got.CollectedAmount != 0 {
		t.Errorf("collected = %d, must survive untouched", got.CollectedAmount)
	}
}

func TestStore_Apply_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campaignstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Apply(ctx, primitive.NewObjectID(), campaignstore.Update{
		Name:     "Ghost",
		Category: []string{"none"},
	})
	if !errors.Is(err, campaignstore.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campaignstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, err := store.Create(ctx, validCampaign())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, c.ID); !errors.Is(err, campaignstore.ErrNotFound) {
		t.Fatalf("GetByID after delete err = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx, c.ID); !errors.Is(err, campaignstore.ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestStore_List_ActiveOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campaignstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	active := validCampaign()
	if _, err := store.Create(ctx, active); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	inactive := validCampaign()
	inactive.Name = "Closed Drive"
	inactive.IsActive = false
	if _, err := store.Create(ctx, inactive); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 campaigns, got %d", len(all))
	}

	onlyActive, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(onlyActive) != 1 {
		t.Fatalf("expected 1 active campaign, got %d", len(onlyActive))
	}
	if !onlyActive[0].IsActive {
		t.Error("active-only list returned an inactive campaign")
	}
}

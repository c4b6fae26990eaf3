package steps

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/envelofy/backend/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	// MinCost keeps fixture creation fast; hash strength is irrelevant here.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.db.Conn.Create(user).Error; err != nil {
		return err
	}
	t.currentUserID = user.ID
	return nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	var user model.UserModel
	err := t.db.Conn.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err := t.aUserExistsWithEmailAndPassword(email, "SecurePass123!"); err != nil {
			return err
		}
	} else {
		t.currentUserID = user.ID
	}

	token, err := t.tokens.GenerateAccessToken(context.Background(), t.currentUserID, email)
	if err != nil {
		return fmt.Errorf("failed to issue access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) anAccountOfTypeExists(name, accountType string) error {
	now := time.Now().UTC()
	account := &model.AccountModel{
		ID:        uuid.New(),
		Name:      name,
		Type:      accountType,
		Balance:   decimal.Zero,
		OwnerID:   t.currentUserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.Conn.Create(account).Error; err != nil {
		return err
	}
	t.accountIDs[name] = account.ID
	return nil
}

func (t *testContext) aCategoryExists(name string) error {
	now := time.Now().UTC()
	category := &model.CategoryModel{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   t.currentUserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.Conn.Create(category).Error; err != nil {
		return err
	}
	t.categoryIDs[name] = category.ID
	return nil
}

func (t *testContext) anEnvelopeInCategoryExists(name, budget, categoryName string) error {
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q was not seeded", categoryName)
	}
	monthlyBudget, err := decimal.NewFromString(budget)
	if err != nil {
		return fmt.Errorf("bad budget %q: %w", budget, err)
	}

	now := time.Now().UTC()
	envelope := &model.EnvelopeModel{
		ID:            uuid.New(),
		Name:          name,
		MonthlyBudget: monthlyBudget,
		CategoryID:    &categoryID,
		OwnerID:       t.currentUserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := t.db.Conn.Create(envelope).Error; err != nil {
		return err
	}
	t.envelopeIDs[name] = envelope.ID
	return nil
}

func (t *testContext) aPatternExists(kind, value, categoryName string, matches, correct int) error {
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q was not seeded", categoryName)
	}

	now := time.Now().UTC()
	pattern := &model.PatternModel{
		ID:           uuid.New(),
		Value:        value,
		Kind:         kind,
		CategoryID:   categoryID,
		MatchCount:   matches,
		CorrectCount: correct,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return t.db.Conn.Create(pattern).Error
}

// theAccountHasTransactions seeds transactions from a table with the columns
// date, description, amount, type and envelope. The envelope column may be
// empty for uncategorized transactions; the date column accepts YYYY-MM-DD
// or a relative "N days ago".
func (t *testContext) theAccountHasTransactions(accountName string, table *godog.Table) error {
	accountID, ok := t.accountIDs[accountName]
	if !ok {
		return fmt.Errorf("account %q was not seeded", accountName)
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("transaction table needs a header and at least one row")
	}

	columns := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		columns[strings.TrimSpace(cell.Value)] = i
	}

	for _, row := range table.Rows[1:] {
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[idx].Value)
		}

		date, err := parseFixtureDate(cell("date"))
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(cell("amount"))
		if err != nil {
			return fmt.Errorf("bad amount %q: %w", cell("amount"), err)
		}

		var envelopeID *uuid.UUID
		if name := cell("envelope"); name != "" {
			id, ok := t.envelopeIDs[name]
			if !ok {
				return fmt.Errorf("envelope %q was not seeded", name)
			}
			envelopeID = &id
		}

		now := time.Now().UTC()
		transaction := &model.TransactionModel{
			ID:          uuid.New(),
			AccountID:   accountID,
			EnvelopeID:  envelopeID,
			Date:        date,
			Description: cell("description"),
			Amount:      amount,
			Type:        cell("type"),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.db.Conn.Create(transaction).Error; err != nil {
			return err
		}
	}
	return nil
}

var relativeDateRe = regexp.MustCompile(`^(\d+) days? ago$`)

// parseFixtureDate accepts YYYY-MM-DD or "N days ago". Relative dates keep
// analysis scenarios inside the rolling window no matter when they run.
func parseFixtureDate(value string) (time.Time, error) {
	if m := relativeDateRe.FindStringSubmatch(value); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, err
		}
		return time.Now().UTC().AddDate(0, 0, -days), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", value, err)
	}
	return date, nil
}

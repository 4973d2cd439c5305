package orchestrator

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shelterops/shelter-console/internal/models"
)

// CRUD-обёртки над проксирующими эндпоинтами шлюза. Все вызовы авторизуются
// access-токеном текущей сессии через TokenSource; 401/403 возвращаются
// вызывающему как ErrUnauthenticated и здесь не обрабатываются.

type idRequest struct {
	ID int64 `json:"id"`
}

// --- Accounts ---

// AccountParams — поля формы создания/изменения учётной записи.
type AccountParams struct {
	Username string
	Password string
	Email    string
	Role     models.Role
}

func (p AccountParams) form() url.Values {
	return url.Values{
		"username": {p.Username},
		"password": {p.Password},
		"email":    {p.Email},
		"role":     {string(p.Role)},
	}
}

// ListAccounts возвращает все учётные записи.
func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	const op = "orchestrator.ListAccounts"

	var out []models.Account
	if err := c.getJSON(ctx, "/listAccounts/", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetAccount возвращает учётную запись по id.
func (c *Client) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	const op = "orchestrator.GetAccount"

	var out models.Account
	if err := c.postJSON(ctx, "/getAccount/", idRequest{ID: id}, true, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// AddAccount создаёт учётную запись; дубликат username — ErrConflict.
func (c *Client) AddAccount(ctx context.Context, params AccountParams) (*models.Account, error) {
	const op = "orchestrator.AddAccount"

	var out models.Account
	if err := c.postForm(ctx, "/addAccount/", params.form(), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateAccount изменяет учётную запись.
func (c *Client) UpdateAccount(ctx context.Context, id int64, params AccountParams) (*models.Account, error) {
	const op = "orchestrator.UpdateAccount"

	form := params.form()
	form.Set("id", strconv.FormatInt(id, 10))

	var out models.Account
	if err := c.postForm(ctx, "/updateAccount/", form, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeleteAccount удаляет учётную запись.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	const op = "orchestrator.DeleteAccount"

	if err := c.postJSON(ctx, "/deleteAccount/", idRequest{ID: id}, true, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AccountExists сообщает, занят ли username (структурный признак в теле).
func (c *Client) AccountExists(ctx context.Context, username string) (bool, error) {
	const op = "orchestrator.AccountExists"

	in := struct {
		User string `json:"user"`
	}{User: username}

	var body marker
	if err := c.postJSON(ctx, "/accountExists/", in, true, &body); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return body.success(), nil
}

// --- Dogs ---

// DogParams — поля формы карточки собаки.
type DogParams struct {
	MicrochipID     string
	Name            string
	Desc            string
	Gender          string
	DOB             string
	VaccinationDate string
	Categories      []int64
}

func (p DogParams) form() url.Values {
	ids := make([]string, 0, len(p.Categories))
	for _, id := range p.Categories {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	return url.Values{
		"microchipID":     {p.MicrochipID},
		"name":            {p.Name},
		"desc":            {p.Desc},
		"gender":          {p.Gender},
		"DOB":             {p.DOB},
		"vaccinationDate": {p.VaccinationDate},
		// Шлюз принимает categories как строку "1,2,3".
		"categories": {strings.Join(ids, ",")},
	}
}

// ListDogs возвращает все карточки собак.
func (c *Client) ListDogs(ctx context.Context) ([]models.Dog, error) {
	const op = "orchestrator.ListDogs"

	var out []models.Dog
	if err := c.getJSON(ctx, "/listDogs/", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetDog возвращает карточку по id.
func (c *Client) GetDog(ctx context.Context, id int64) (*models.Dog, error) {
	const op = "orchestrator.GetDog"

	var out models.Dog
	if err := c.postJSON(ctx, "/getDog/", idRequest{ID: id}, true, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// AddDog создаёт карточку собаки.
func (c *Client) AddDog(ctx context.Context, params DogParams) (*models.Dog, error) {
	const op = "orchestrator.AddDog"

	var out models.Dog
	if err := c.postForm(ctx, "/addDog/", params.form(), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateDog изменяет карточку собаки.
func (c *Client) UpdateDog(ctx context.Context, id int64, params DogParams) (*models.Dog, error) {
	const op = "orchestrator.UpdateDog"

	form := params.form()
	form.Set("id", strconv.FormatInt(id, 10))

	var out models.Dog
	if err := c.postForm(ctx, "/updateDog/", form, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeleteDog удаляет карточку собаки.
func (c *Client) DeleteDog(ctx context.Context, id int64) error {
	const op = "orchestrator.DeleteDog"

	if err := c.postJSON(ctx, "/deleteDog/", idRequest{ID: id}, true, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DogExists сообщает, есть ли собака с таким именем (и чипом, если задан).
func (c *Client) DogExists(ctx context.Context, name, microchipID string) (bool, error) {
	const op = "orchestrator.DogExists"

	in := struct {
		Name        string `json:"name"`
		MicrochipID string `json:"microchipID"`
	}{Name: name, MicrochipID: microchipID}

	var body marker
	if err := c.postJSON(ctx, "/dogExists/", in, true, &body); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return body.success(), nil
}

// --- Dog categories ---

// CategoryParams — поля формы категории.
type CategoryParams struct {
	Name string
	Desc string
}

func (p CategoryParams) form() url.Values {
	return url.Values{
		"name": {p.Name},
		"desc": {p.Desc},
	}
}

// ListDogCategories возвращает все категории.
func (c *Client) ListDogCategories(ctx context.Context) ([]models.DogCategory, error) {
	const op = "orchestrator.ListDogCategories"

	var out []models.DogCategory
	if err := c.getJSON(ctx, "/listDogCategories/", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetDogCategory возвращает категорию по id.
func (c *Client) GetDogCategory(ctx context.Context, id int64) (*models.DogCategory, error) {
	const op = "orchestrator.GetDogCategory"

	var out models.DogCategory
	if err := c.postJSON(ctx, "/getDogCategory/", idRequest{ID: id}, true, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// AddDogCategory создаёт категорию.
func (c *Client) AddDogCategory(ctx context.Context, params CategoryParams) (*models.DogCategory, error) {
	const op = "orchestrator.AddDogCategory"

	var out models.DogCategory
	if err := c.postForm(ctx, "/addDogCategory/", params.form(), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateDogCategory изменяет категорию.
func (c *Client) UpdateDogCategory(ctx context.Context, id int64, params CategoryParams) (*models.DogCategory, error) {
	const op = "orchestrator.UpdateDogCategory"

	form := params.form()
	form.Set("id", strconv.FormatInt(id, 10))

	var out models.DogCategory
	if err := c.postForm(ctx, "/updateDogCategory/", form, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DogCategoryExists сообщает, есть ли категория с таким именем
// (структурный признак в теле, как у accountExists/dogExists).
func (c *Client) DogCategoryExists(ctx context.Context, name string) (bool, error) {
	const op = "orchestrator.DogCategoryExists"

	in := struct {
		Name string `json:"name"`
	}{Name: name}

	var body marker
	if err := c.postJSON(ctx, "/dogCategoryExists/", in, true, &body); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return body.success(), nil
}

// DeleteDogCategory удаляет категорию.
func (c *Client) DeleteDogCategory(ctx context.Context, id int64) error {
	const op = "orchestrator.DeleteDogCategory"

	if err := c.postJSON(ctx, "/deleteDogCategory/", idRequest{ID: id}, true, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// --- Walks ---

// WalkParams — поля формы записи журнала выгула.
type WalkParams struct {
	DogID              int64
	Handler            string
	Enrichment         string
	Walking            string
	LeashConditioning  string
	TouchConditioning  string
	MuzzleConditioning string
	BehaviorIssues     string
	MedicalIssues      string
	PoopScore          string
	ReactivityScore    string
	SensitivityScore   string
}

func (p WalkParams) form() url.Values {
	return url.Values{
		"dogID":              {strconv.FormatInt(p.DogID, 10)},
		"handler":            {p.Handler},
		"enrichment":         {p.Enrichment},
		"walking":            {p.Walking},
		"leashConditioning":  {p.LeashConditioning},
		"touchConditioning":  {p.TouchConditioning},
		"muzzleConditioning": {p.MuzzleConditioning},
		"behaviorIssues":     {p.BehaviorIssues},
		"medicalIssues":      {p.MedicalIssues},
		"poopScore":          {p.PoopScore},
		"reactivityScore":    {p.ReactivityScore},
		"sensitivityScore":   {p.SensitivityScore},
	}
}

// ListWalks возвращает журнал выгулов.
func (c *Client) ListWalks(ctx context.Context) ([]models.Walk, error) {
	const op = "orchestrator.ListWalks"

	var out []models.Walk
	if err := c.getJSON(ctx, "/listWalks/", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetWalk возвращает запись журнала по id.
func (c *Client) GetWalk(ctx context.Context, id int64) (*models.Walk, error) {
	const op = "orchestrator.GetWalk"

	var out models.Walk
	if err := c.postJSON(ctx, "/getWalk/", idRequest{ID: id}, true, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// AddWalk создаёт запись журнала выгула.
func (c *Client) AddWalk(ctx context.Context, params WalkParams) (*models.Walk, error) {
	const op = "orchestrator.AddWalk"

	var out models.Walk
	if err := c.postForm(ctx, "/addWalk/", params.form(), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateWalk изменяет запись журнала.
func (c *Client) UpdateWalk(ctx context.Context, id int64, params WalkParams) (*models.Walk, error) {
	const op = "orchestrator.UpdateWalk"

	form := params.form()
	form.Set("id", strconv.FormatInt(id, 10))

	var out models.Walk
	if err := c.postForm(ctx, "/updateWalk/", form, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeleteWalk удаляет запись журнала.
func (c *Client) DeleteWalk(ctx context.Context, id int64) error {
	const op = "orchestrator.DeleteWalk"

	if err := c.postJSON(ctx, "/deleteWalk/", idRequest{ID: id}, true, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// --- Payments ---

// ListPayments возвращает спонсорские платежи.
func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	const op = "orchestrator.ListPayments"

	var out []models.Payment
	if err := c.getJSON(ctx, "/listPayments/", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetPayment возвращает платёж по идентификатору.
func (c *Client) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	const op = "orchestrator.GetPayment"

	var out models.Payment
	if err := c.postJSON(ctx, "/getPayment/", idRequest{ID: id}, true, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeletePayment удаляет платёж.
func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	const op = "orchestrator.DeletePayment"

	if err := c.postJSON(ctx, "/deletePayment/", idRequest{ID: id}, true, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

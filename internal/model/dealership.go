package model

import (
	"errors"
	"strconv"
)

// Worker posts eligible for a specialization.
const (
	PostUnemployed = "Безработный"
	PostAccountant = "Бухгалтер"
	PostDriver     = "Водитель"
	PostSeller     = "Продавец"
	PostLifeguard  = "Охранник"
)

const (
	defaultNotPresent   = "Отсутствует"
	defaultSecurityZone = "Вход"
	minSalary           = 20000
)

type Company struct {
	INN         int64  `json:"inn" binding:"required,gt=0"`
	NameCompany string `json:"name_company" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

func (Company) Columns() []string { return []string{"inn", "name_company", "address"} }

func (c Company) Values() []string {
	return []string{strconv.FormatInt(c.INN, 10), c.NameCompany, c.Address}
}

type Director struct {
	INN        int64   `json:"inn" binding:"required,gt=0"`
	Profit     float64 `json:"profit"`
	Surname    string  `json:"surname" binding:"required"`
	Firstname  string  `json:"firstname" binding:"required"`
	Lastname   string  `json:"lastname" binding:"required"`
	INNCompany *int64  `json:"inn_company"`
}

func (Director) Columns() []string {
	return []string{"inn", "profit", "surname", "firstname", "lastname", "inn_company"}
}

func (d Director) Values() []string {
	return []string{
		strconv.FormatInt(d.INN, 10), formatFloat(d.Profit),
		d.Surname, d.Firstname, d.Lastname, formatOptionalInt(d.INNCompany),
	}
}

// Expense is an entry of the expense journal.
type Expense struct {
	ID   int64   `json:"id_expanse"`
	Type string  `json:"expanse_type" binding:"required"`
	Sum  float64 `json:"expanse_sum"`
	Name string  `json:"expanse_name" binding:"required"`
}

func (Expense) Columns() []string {
	return []string{"id_expanse", "expanse_type", "expanse_sum", "expanse_name"}
}

func (e Expense) Values() []string {
	return []string{strconv.FormatInt(e.ID, 10), e.Type, formatFloat(e.Sum), e.Name}
}

type Worker struct {
	ID          int64  `json:"worker_id"`
	Salary      int64  `json:"salary" binding:"gte=20000"`
	Post        string `json:"post" binding:"required"`
	Experience  int    `json:"experience" binding:"gte=0"`
	Surname     string `json:"surname" binding:"required"`
	Firstname   string `json:"firstname" binding:"required"`
	Lastname    string `json:"lastname" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address" binding:"required"`
	ExpenseID   *int64 `json:"id_expanse"`
	DirectorINN *int64 `json:"inn_director"`
}

func (w *Worker) ApplyDefaults() {
	w.Salary = minSalary
	w.Post = PostUnemployed
}

func (Worker) Columns() []string {
	return []string{
		"worker_id", "salary", "post", "experience", "surname", "firstname",
		"lastname", "phone_number", "address", "id_expanse", "inn_director",
	}
}

func (w Worker) Values() []string {
	return []string{
		strconv.FormatInt(w.ID, 10), strconv.FormatInt(w.Salary, 10), w.Post,
		strconv.Itoa(w.Experience), w.Surname, w.Firstname, w.Lastname,
		w.PhoneNumber, w.Address, formatOptionalInt(w.ExpenseID), formatOptionalInt(w.DirectorINN),
	}
}

type Client struct {
	AppNumber  int64   `json:"app_number"`
	Budget     float64 `json:"budget" binding:"gte=0"`
	CurrentCar string  `json:"current_car"`
	PreferCar  string  `json:"prefer_car"`
}

func (c *Client) ApplyDefaults() {
	c.CurrentCar = defaultNotPresent
	c.PreferCar = defaultNotPresent
}

func (Client) Columns() []string {
	return []string{"app_number", "budget", "current_car", "prefer_car"}
}

func (c Client) Values() []string {
	return []string{strconv.FormatInt(c.AppNumber, 10), formatFloat(c.Budget), c.CurrentCar, c.PreferCar}
}

type Car struct {
	NumberVIN     string `json:"number_vin" binding:"required"`
	Complectation string `json:"complectation" binding:"required"`
	Color         string `json:"color" binding:"required"`
	Mark          string `json:"mark" binding:"required"`
	Model         string `json:"model" binding:"required"`
	YearCreate    int    `json:"year_create" binding:"gte=1980"`
	AppNumber     *int64 `json:"app_number"`
}

func (Car) Columns() []string {
	return []string{"number_vin", "complectation", "color", "mark", "model", "year_create", "app_number"}
}

func (c Car) Values() []string {
	return []string{
		c.NumberVIN, c.Complectation, c.Color, c.Mark, c.Model,
		strconv.Itoa(c.YearCreate), formatOptionalInt(c.AppNumber),
	}
}

// Admission is an entry of the car admission journal.
type Admission struct {
	IDNumber      int64  `json:"id_number"`
	AdmissionDate Date   `json:"admission_date"`
	Complectation string `json:"complectation" binding:"required"`
	Color         string `json:"color" binding:"required"`
	Mark          string `json:"mark" binding:"required"`
	Model         string `json:"model" binding:"required"`
	YearCreate    int    `json:"year_create" binding:"gte=1980"`
}

func (a Admission) Validate() error {
	if a.AdmissionDate.IsZero() {
		return errors.New("admission_date is required")
	}
	return nil
}

func (Admission) Columns() []string {
	return []string{"id_number", "admission_date", "complectation", "color", "mark", "model", "year_create"}
}

func (a Admission) Values() []string {
	return []string{
		strconv.FormatInt(a.IDNumber, 10), a.AdmissionDate.String(),
		a.Complectation, a.Color, a.Mark, a.Model, strconv.Itoa(a.YearCreate),
	}
}

type Accountant struct {
	WorkerID int64  `json:"worker_id" binding:"required,gt=0"`
	Qual     int    `json:"qual" binding:"gte=0"`
	Kit      string `json:"kit"`
	IDNumber *int64 `json:"id_number"`
}

func (a *Accountant) ApplyDefaults() {
	a.Kit = defaultNotPresent
}

func (Accountant) Columns() []string { return []string{"worker_id", "qual", "kit", "id_number"} }

func (a Accountant) Values() []string {
	return []string{strconv.FormatInt(a.WorkerID, 10), strconv.Itoa(a.Qual), a.Kit, formatOptionalInt(a.IDNumber)}
}

type Driver struct {
	WorkerID  int64   `json:"worker_id" binding:"required,gt=0"`
	CarNumber string  `json:"car_number" binding:"required"`
	Snacks    string  `json:"snacks"`
	NumberVIN *string `json:"number_vin"`
}

func (d *Driver) ApplyDefaults() {
	d.Snacks = defaultNotPresent
}

func (Driver) Columns() []string { return []string{"worker_id", "car_number", "snacks", "number_vin"} }

func (d Driver) Values() []string {
	return []string{strconv.FormatInt(d.WorkerID, 10), d.CarNumber, d.Snacks, formatOptionalString(d.NumberVIN)}
}

type Seller struct {
	WorkerID   int64  `json:"worker_id" binding:"required,gt=0"`
	SellerType string `json:"seller_type" binding:"required"`
	AppNumber  *int64 `json:"app_number"`
}

func (Seller) Columns() []string { return []string{"worker_id", "seller_type", "app_number"} }

func (s Seller) Values() []string {
	return []string{strconv.FormatInt(s.WorkerID, 10), s.SellerType, formatOptionalInt(s.AppNumber)}
}

type Lifeguard struct {
	WorkerID     int64  `json:"worker_id" binding:"required,gt=0"`
	Uniform      string `json:"uniform" binding:"required"`
	Kit          string `json:"kit"`
	SecurityZone string `json:"security_zone"`
}

func (l *Lifeguard) ApplyDefaults() {
	l.Kit = defaultNotPresent
	l.SecurityZone = defaultSecurityZone
}

func (Lifeguard) Columns() []string { return []string{"worker_id", "uniform", "kit", "security_zone"} }

func (l Lifeguard) Values() []string {
	return []string{strconv.FormatInt(l.WorkerID, 10), l.Uniform, l.Kit, l.SecurityZone}
}

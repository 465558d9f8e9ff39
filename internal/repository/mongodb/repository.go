package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pureclean/platform/internal/domain/models"
)

// Collection names. Orders, employees and expenses are tenant-scoped via a
// companyId field; adminProfiles and config hold one singleton document each.
const (
	collCompanies = "companies"
	collOrders    = "orders"
	collEmployees = "employees"
	collExpenses  = "expenses"
	collProfiles  = "adminProfiles"
	collConfig    = "config"
	collReports   = "daily_reports"

	profileDocID  = "main"
	settingsDocID = "dashboardSettings"
)

// MongoDBRepository is the document store behind every service. Patches are
// applied with $set of non-nil fields only, so absent values are never
// written and never clobber existing ones.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

func (r *MongoDBRepository) coll(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// --- companies ---

// InsertCompany stores a newly provisioned company.
func (r *MongoDBRepository) InsertCompany(ctx context.Context, company models.Company) error {
	if _, err := r.coll(collCompanies).InsertOne(ctx, company); err != nil {
		return fmt.Errorf("insert company %s: %w", company.ID, err)
	}
	return nil
}

// GetCompany fetches one company by id. A missing document yields (nil, nil).
func (r *MongoDBRepository) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	err := r.coll(collCompanies).FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	return &company, nil
}

// FindCompanyByLogin fetches the company with an exact login match, or nil.
func (r *MongoDBRepository) FindCompanyByLogin(ctx context.Context, login string) (*models.Company, error) {
	var company models.Company
	err := r.coll(collCompanies).FindOne(ctx, bson.M{"login": login}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find company by login: %w", err)
	}
	return &company, nil
}

// ListCompanies returns every provisioned company.
func (r *MongoDBRepository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	cur, err := r.coll(collCompanies).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	var companies []models.Company
	if err := cur.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	return companies, nil
}

// UpdateCompany applies the non-nil fields of the patch.
func (r *MongoDBRepository) UpdateCompany(ctx context.Context, id string, patch models.CompanyPatch) error {
	res, err := r.coll(collCompanies).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("update company %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update company %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteCompany removes only the company document. Orders, employees and
// expenses referencing it are left in place and become unreachable through
// tenant-scoped listings.
func (r *MongoDBRepository) DeleteCompany(ctx context.Context, id string) error {
	if _, err := r.coll(collCompanies).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete company %s: %w", id, err)
	}
	return nil
}

// --- orders ---

// InsertOrder stores a new order.
func (r *MongoDBRepository) InsertOrder(ctx context.Context, order models.Order) error {
	if _, err := r.coll(collOrders).InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order %s: %w", order.ID, err)
	}
	return nil
}

// GetOrder fetches one order by id. A missing document yields (nil, nil).
func (r *MongoDBRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.coll(collOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &order, nil
}

// ListOrdersByCompany returns the orders owned by one company.
func (r *MongoDBRepository) ListOrdersByCompany(ctx context.Context, companyID string) ([]models.Order, error) {
	cur, err := r.coll(collOrders).Find(ctx, bson.M{"companyId": companyID})
	if err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", companyID, err)
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// SetOrderStatus overwrites only the status field.
func (r *MongoDBRepository) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := r.coll(collOrders).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("set order %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set order %s status: %w", id, ErrNotFound)
	}
	return nil
}

// SetOrderPayment overwrites the whole payment sub-record.
func (r *MongoDBRepository) SetOrderPayment(ctx context.Context, id string, payment models.Payment) error {
	res, err := r.coll(collOrders).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"payment": payment}})
	if err != nil {
		return fmt.Errorf("set order %s payment: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set order %s payment: %w", id, ErrNotFound)
	}
	return nil
}

// SetOrderCustomer overwrites the whole customer sub-record.
func (r *MongoDBRepository) SetOrderCustomer(ctx context.Context, id string, customer models.Customer) error {
	res, err := r.coll(collOrders).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"customer": customer}})
	if err != nil {
		return fmt.Errorf("set order %s customer: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set order %s customer: %w", id, ErrNotFound)
	}
	return nil
}

// SetOrderDetails overwrites the whole details sub-record.
func (r *MongoDBRepository) SetOrderDetails(ctx context.Context, id string, details models.OrderDetails) error {
	res, err := r.coll(collOrders).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"details": details}})
	if err != nil {
		return fmt.Errorf("set order %s details: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set order %s details: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteOrder hard-deletes one order.
func (r *MongoDBRepository) DeleteOrder(ctx context.Context, id string) error {
	if _, err := r.coll(collOrders).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

// --- employees ---

// InsertEmployee stores a new employee.
func (r *MongoDBRepository) InsertEmployee(ctx context.Context, employee models.Employee) error {
	if _, err := r.coll(collEmployees).InsertOne(ctx, employee); err != nil {
		return fmt.Errorf("insert employee %s: %w", employee.ID, err)
	}
	return nil
}

// GetEmployee fetches one employee by id. A missing document yields (nil, nil).
func (r *MongoDBRepository) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.coll(collEmployees).FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get employee %s: %w", id, err)
	}
	return &employee, nil
}

// ListEmployeesByCompany returns the employees of one company.
func (r *MongoDBRepository) ListEmployeesByCompany(ctx context.Context, companyID string) ([]models.Employee, error) {
	cur, err := r.coll(collEmployees).Find(ctx, bson.M{"companyId": companyID})
	if err != nil {
		return nil, fmt.Errorf("list employees for %s: %w", companyID, err)
	}
	var employees []models.Employee
	if err := cur.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return employees, nil
}

// UpdateEmployee applies the non-nil fields of the patch.
func (r *MongoDBRepository) UpdateEmployee(ctx context.Context, id string, patch models.EmployeePatch) error {
	res, err := r.coll(collEmployees).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("update employee %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update employee %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetEmployeeAttendance overwrites the attendance day set.
func (r *MongoDBRepository) SetEmployeeAttendance(ctx context.Context, id string, attendance []string) error {
	res, err := r.coll(collEmployees).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"attendance": attendance}})
	if err != nil {
		return fmt.Errorf("set employee %s attendance: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set employee %s attendance: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteEmployee hard-deletes one employee.
func (r *MongoDBRepository) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := r.coll(collEmployees).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	return nil
}

// --- expenses ---

// InsertExpense stores a new expense record.
func (r *MongoDBRepository) InsertExpense(ctx context.Context, expense models.Expense) error {
	if _, err := r.coll(collExpenses).InsertOne(ctx, expense); err != nil {
		return fmt.Errorf("insert expense %s: %w", expense.ID, err)
	}
	return nil
}

// GetExpense fetches one expense by id. A missing document yields (nil, nil).
func (r *MongoDBRepository) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	err := r.coll(collExpenses).FindOne(ctx, bson.M{"_id": id}).Decode(&expense)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense %s: %w", id, err)
	}
	return &expense, nil
}

// ListExpensesByCompany returns the expenses of one company.
func (r *MongoDBRepository) ListExpensesByCompany(ctx context.Context, companyID string) ([]models.Expense, error) {
	cur, err := r.coll(collExpenses).Find(ctx, bson.M{"companyId": companyID})
	if err != nil {
		return nil, fmt.Errorf("list expenses for %s: %w", companyID, err)
	}
	var expenses []models.Expense
	if err := cur.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense hard-deletes one expense record.
func (r *MongoDBRepository) DeleteExpense(ctx context.Context, id string) error {
	if _, err := r.coll(collExpenses).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	return nil
}

// --- daily report snapshots ---

// InsertDailyReport saves a nightly per-company report snapshot.
func (r *MongoDBRepository) InsertDailyReport(ctx context.Context, report models.DailyReport) error {
	if _, err := r.coll(collReports).InsertOne(ctx, report); err != nil {
		return fmt.Errorf("insert daily report: %w", err)
	}
	return nil
}

// --- singleton documents ---

// LoadAdminProfile returns the profile document, seeding the default on
// first access.
func (r *MongoDBRepository) LoadAdminProfile(ctx context.Context) (models.AdminProfile, error) {
	var profile models.AdminProfile
	err := r.coll(collProfiles).FindOne(ctx, bson.M{"_id": profileDocID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		profile = models.DefaultAdminProfile()
		if err := r.SaveAdminProfile(ctx, profile); err != nil {
			return profile, err
		}
		return profile, nil
	}
	if err != nil {
		return models.AdminProfile{}, fmt.Errorf("load admin profile: %w", err)
	}
	return profile, nil
}

// SaveAdminProfile upserts the profile document.
func (r *MongoDBRepository) SaveAdminProfile(ctx context.Context, profile models.AdminProfile) error {
	opts := options.Replace().SetUpsert(true)
	doc := struct {
		ID string `bson:"_id"`
		models.AdminProfile `bson:",inline"`
	}{ID: profileDocID, AdminProfile: profile}
	if _, err := r.coll(collProfiles).ReplaceOne(ctx, bson.M{"_id": profileDocID}, doc, opts); err != nil {
		return fmt.Errorf("save admin profile: %w", err)
	}
	return nil
}

// LoadDashboardSettings returns the settings document, seeding the default
// on first access.
func (r *MongoDBRepository) LoadDashboardSettings(ctx context.Context) (models.DashboardSettings, error) {
	var settings models.DashboardSettings
	err := r.coll(collConfig).FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		settings = models.DefaultDashboardSettings()
		if err := r.SaveDashboardSettings(ctx, settings); err != nil {
			return settings, err
		}
		return settings, nil
	}
	if err != nil {
		return models.DashboardSettings{}, fmt.Errorf("load dashboard settings: %w", err)
	}
	return settings, nil
}

// SaveDashboardSettings upserts the settings document.
func (r *MongoDBRepository) SaveDashboardSettings(ctx context.Context, settings models.DashboardSettings) error {
	opts := options.Replace().SetUpsert(true)
	doc := struct {
		ID string `bson:"_id"`
		models.DashboardSettings `bson:",inline"`
	}{ID: settingsDocID, DashboardSettings: settings}
	if _, err := r.coll(collConfig).ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, opts); err != nil {
		return fmt.Errorf("save dashboard settings: %w", err)
	}
	return nil
}

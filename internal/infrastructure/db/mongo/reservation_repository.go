package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tot/reservations-api/internal/core/domain"
	"github.com/tot/reservations-api/internal/core/ports"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

type reservationDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	UserEmail      string             `bson:"user_email"`
	UserName       string             `bson:"user_name"`
	UserSurname    string             `bson:"user_surname"`
	NumberOfGuests int                `bson:"number_of_guests"`
	TablesReserved int                `bson:"tables_reserved"`
	Date           string             `bson:"reservation_date"`
	Time           int                `bson:"reservation_time"` // minutes since midnight
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (d reservationDoc) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		UserEmail:      d.UserEmail,
		UserName:       d.UserName,
		UserSurname:    d.UserSurname,
		NumberOfGuests: d.NumberOfGuests,
		TablesReserved: d.TablesReserved,
		Date:           d.Date,
		Time:           domain.TimeOfDay(d.Time),
		CreatedAt:      unixToTime(d.CreatedAt),
		UpdatedAt:      unixToTime(d.UpdatedAt),
	}
}

func toReservationDoc(r *domain.Reservation) reservationDoc {
	return reservationDoc{
		UserID:         r.UserID,
		UserEmail:      r.UserEmail,
		UserName:       r.UserName,
		UserSurname:    r.UserSurname,
		NumberOfGuests: r.NumberOfGuests,
		TablesReserved: r.TablesReserved,
		Date:           r.Date,
		Time:           int(r.Time),
		CreatedAt:      r.CreatedAt.Unix(),
		UpdatedAt:      r.UpdatedAt.Unix(),
	}
}

// Create inserts a new reservation. The unique (user_email, reservation_date)
// index turns a concurrent same-date insert for the same owner into
// domain.ErrDuplicateReservation.
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toReservationDoc(reservation))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateReservation
		}
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	created := *reservation
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reservationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByDate returns every reservation on the given calendar date, the input
// to the availability sum.
func (r *ReservationRepository) FindByDate(ctx context.Context, date string) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"reservation_date": date})
	if err != nil {
		return nil, fmt.Errorf("find reservations by date: %w", err)
	}
	defer cur.Close(ctx)

	var reservations []*domain.Reservation
	for cur.Next(ctx) {
		var doc reservationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode reservation: %w", err)
		}
		reservations = append(reservations, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) FindByUserAndDate(ctx context.Context, email, date string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reservationDoc
	err := r.col.FindOne(ctx, bson.M{"user_email": email, "reservation_date": date}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation by user and date: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(reservation.ID)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"number_of_guests": reservation.NumberOfGuests,
		"tables_reserved":  reservation.TablesReserved,
		"reservation_date": reservation.Date,
		"reservation_time": int(reservation.Time),
		"updated_at":       reservation.UpdatedAt.Unix(),
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateReservation
		}
		return nil, fmt.Errorf("update reservation: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrReservationNotFound
	}
	return reservation, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// List returns a page of reservations inside the optional date range,
// optionally narrowed by a case-insensitive substring match on the owner's
// name, surname, or email.
func (r *ReservationRepository) List(ctx context.Context, filter ports.ListReservationsFilter) ([]*domain.Reservation, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	dateRange := bson.M{}
	if filter.StartDate != "" {
		dateRange["$gte"] = filter.StartDate
	}
	if filter.EndDate != "" {
		dateRange["$lte"] = filter.EndDate
	}
	if len(dateRange) > 0 {
		query["reservation_date"] = dateRange
	}
	if filter.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"user_name": rx},
			bson.M{"user_surname": rx},
			bson.M{"user_email": rx},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "reservation_date", Value: 1}, {Key: "reservation_time", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	defer cur.Close(ctx)

	var reservations []*domain.Reservation
	for cur.Next(ctx) {
		var doc reservationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode reservation: %w", err)
		}
		reservations = append(reservations, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations: %w", err)
	}
	return reservations, total, nil
}

// EnsureIndexes creates the date index used by the availability sum and the
// unique (owner, date) index backing the one-reservation-per-date rule.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reservation_date", Value: 1}}},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "reservation_date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

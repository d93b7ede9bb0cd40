package repository

import (
	"context"
	"database/sql"

	"github.com/kitswap/kitswap-backend/internal/model"
)

type ItemRepo struct{ DB *sql.DB }

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{DB: db} }

const itemColumns = `id,user_id,item_type_id,item_name,category,subcategory,sport,school_name,
	club_name,team,size,gender,condition_grade,price,front_photo,back_photo,description,
	quantity,status,created_at,updated_at`

func scanItem(row interface{ Scan(...any) error }) (model.Item, error) {
	var (
		i      model.Item
		typeID sql.NullInt64
		grade  sql.NullInt64
		front  sql.NullString
		back   sql.NullString
		descr  sql.NullString
	)
	err := row.Scan(&i.ID, &i.UserID, &typeID, &i.ItemName, &i.Category, &i.Subcategory,
		&i.Sport, &i.SchoolName, &i.ClubName, &i.Team, &i.Size, &i.Gender, &grade,
		&i.Price, &front, &back, &descr, &i.Quantity, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return i, err
	}
	if typeID.Valid {
		v := uint64(typeID.Int64)
		i.ItemTypeID = &v
	}
	if grade.Valid {
		v := int(grade.Int64)
		i.ConditionGrade = &v
	}
	i.FrontPhoto, i.BackPhoto, i.Description = front.String, back.String, descr.String
	return i, nil
}

// Create inserts a listing and returns its ID.
func (r *ItemRepo) Create(ctx context.Context, i *model.Item) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO items (user_id, item_type_id, item_name, category, subcategory, sport,
			school_name, club_name, team, size, gender, condition_grade, price,
			front_photo, back_photo, description, quantity, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		i.UserID, nullableID(i.ItemTypeID), i.ItemName, i.Category, i.Subcategory, i.Sport,
		i.SchoolName, i.ClubName, i.Team, i.Size, string(i.Gender), nullableInt(i.ConditionGrade),
		i.Price, i.FrontPhoto, i.BackPhoto, i.Description, i.Quantity, i.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a listing by id.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id=? LIMIT 1", id)
	i, err := scanItem(row)
	if err == sql.ErrNoRows {
		return i, ErrNotFound
	}
	return i, err
}

// ListByOwner returns a user's listings, newest first.
func (r *ItemRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Item, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE user_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListByItemType returns the listings classified under an item type.
func (r *ItemRepo) ListByItemType(ctx context.Context, itemTypeID uint64) ([]model.Item, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE item_type_id=? ORDER BY created_at DESC", itemTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// Update writes every mutable column of a listing. Callers load the row,
// apply partial changes in memory, then save it back; absent fields in the
// request therefore keep their stored values.
func (r *ItemRepo) Update(ctx context.Context, i *model.Item) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE items SET item_name=?, category=?, subcategory=?, sport=?, school_name=?,
			club_name=?, team=?, size=?, gender=?, condition_grade=?, price=?,
			front_photo=?, back_photo=?, description=?, quantity=?, status=?
		 WHERE id=?`,
		i.ItemName, i.Category, i.Subcategory, i.Sport, i.SchoolName,
		i.ClubName, i.Team, i.Size, string(i.Gender), nullableInt(i.ConditionGrade), i.Price,
		i.FrontPhoto, i.BackPhoto, i.Description, i.Quantity, i.Status, i.ID)
	return err
}

// Delete removes a listing permanently.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM items WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	items := []model.Item{}
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func nullableID(id *uint64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

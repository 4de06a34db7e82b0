package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/akreem/alliance/internal/domain"
)

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Repo is the MySQL snapshot store: the last synced view of the catalog,
// read when the upstream is unavailable.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) error {
	images, _ := json.Marshal(p.Images)
	features, _ := json.Marshal(p.Features)
	agentEmail := ""
	if p.Agent != nil {
		agentEmail = p.Agent.Email
	}
	_, err := r.db.ExecContext(ctx, upsertListingSQL,
		p.ID,
		p.Title,
		p.Description,
		p.Location,
		p.Type,
		p.Beds,
		p.Baths,
		p.Sqft,
		p.Price,
		p.PriceValue,
		p.Image,
		string(images),
		string(features),
		valF64(p.Lat),
		valF64(p.Lng),
		nullStr(agentEmail),
		p.IsFavorite,
	)
	return err
}

func (r *Repo) UpsertAgent(ctx context.Context, a domain.Agent) error {
	_, err := r.db.ExecContext(ctx, upsertAgentSQL, a.Email, a.Name, a.Phone, a.Image)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	row := r.db.QueryRowContext(ctx, getListingSQL, id)
	p, err := scanListing(row)
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, err
}

func (r *Repo) ListProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, listListingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		p, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	rows, err := r.db.QueryContext(ctx, listAgentsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Agent
	for rows.Next() {
		var a domain.Agent
		var image sql.NullString
		if err := rows.Scan(&a.Email, &a.Name, &a.Phone, &image); err != nil {
			return nil, err
		}
		a.Image = image.String
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dst ...any) error }

func scanListing(row rowScanner) (domain.Property, error) {
	var p domain.Property
	var (
		description      sql.NullString
		imagesJSON       []byte
		featuresJSON     []byte
		lat, lng         sql.NullFloat64
		agEmail, agName  sql.NullString
		agPhone, agImage sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Title, &description, &p.Location, &p.Type,
		&p.Beds, &p.Baths, &p.Sqft,
		&p.Price, &p.PriceValue, &p.Image,
		&imagesJSON, &featuresJSON,
		&lat, &lng, &p.IsFavorite,
		&agEmail, &agName, &agPhone, &agImage,
	); err != nil {
		return domain.Property{}, err
	}

	p.Description = description.String
	_ = json.Unmarshal(imagesJSON, &p.Images)
	_ = json.Unmarshal(featuresJSON, &p.Features)
	if lat.Valid {
		v := lat.Float64
		p.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		p.Lng = &v
	}
	if agEmail.Valid && agEmail.String != "" {
		p.Agent = &domain.Agent{
			Email: agEmail.String,
			Name:  agName.String,
			Phone: agPhone.String,
			Image: agImage.String,
		}
	}
	return p, nil
}

package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
	"github.com/oksasatya/devconnector-api/internal/domain/repository"
)

type profileDoc struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	User           primitive.ObjectID  `bson:"user"`
	Company        string              `bson:"company,omitempty"`
	Website        string              `bson:"website,omitempty"`
	Location       string              `bson:"location,omitempty"`
	Bio            string              `bson:"bio,omitempty"`
	Status         string              `bson:"status,omitempty"`
	GithubUsername string              `bson:"githubusername,omitempty"`
	Skills         []string            `bson:"skills"`
	Social         entity.Social       `bson:"social,omitempty"`
	Experience     []entity.Experience `bson:"experience"`
	Education      []entity.Education  `bson:"education"`
	CreatedAt      time.Time           `bson:"date"`
	UpdatedAt      time.Time           `bson:"updated_at"`
}

func (d profileDoc) entity() *entity.Profile {
	p := &entity.Profile{
		ID:             d.ID.Hex(),
		UserID:         d.User.Hex(),
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Bio:            d.Bio,
		Status:         d.Status,
		GithubUsername: d.GithubUsername,
		Skills:         d.Skills,
		Social:         d.Social,
		Experience:     d.Experience,
		Education:      d.Education,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}
	return p
}

type ProfileRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(profilesCollection), now: time.Now}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	var d profileDoc
	if err := r.col.FindOne(ctx, bson.M{"user": oid}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.entity(), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*entity.Profile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// upsertUpdate builds the update document for Upsert. Supplied fields go in
// $set; defaults for everything else only apply when the document is created.
func upsertUpdate(f entity.ProfileFields, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	for k, v := range map[string]*string{
		"company":        f.Company,
		"website":        f.Website,
		"location":       f.Location,
		"bio":            f.Bio,
		"status":         f.Status,
		"githubusername": f.GithubUsername,
	} {
		if v != nil {
			set[k] = *v
		}
	}
	for k, v := range f.SocialSet() {
		set["social."+k] = v
	}

	onInsert := bson.M{
		"date":       now,
		"experience": bson.A{},
		"education":  bson.A{},
	}
	if f.Skills != nil {
		set["skills"] = f.Skills
	} else {
		onInsert["skills"] = bson.A{}
	}
	return bson.M{"$set": set, "$setOnInsert": onInsert}
}

func (r *ProfileRepository) update(ctx context.Context, userID string, update bson.M, upsert bool) (*entity.Profile, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(upsert)
	var d profileDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": oid}, update, opts).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.entity(), nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, userID string, f entity.ProfileFields) (*entity.Profile, error) {
	return r.update(ctx, userID, upsertUpdate(f, r.now().UTC()), true)
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"user": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func pushFront(field string, entry any, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}},
		"$set":  bson.M{"updated_at": now},
	}
}

func pullByID(field, entryID string, now time.Time) bson.M {
	return bson.M{
		"$pull": bson.M{field: bson.M{"id": entryID}},
		"$set":  bson.M{"updated_at": now},
	}
}

func (r *ProfileRepository) PushExperience(ctx context.Context, userID string, e entity.Experience) (*entity.Profile, error) {
	return r.update(ctx, userID, pushFront("experience", e, r.now().UTC()), false)
}

func (r *ProfileRepository) PullExperience(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	return r.update(ctx, userID, pullByID("experience", entryID, r.now().UTC()), false)
}

func (r *ProfileRepository) PushEducation(ctx context.Context, userID string, e entity.Education) (*entity.Profile, error) {
	return r.update(ctx, userID, pushFront("education", e, r.now().UTC()), false)
}

func (r *ProfileRepository) PullEducation(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	return r.update(ctx, userID, pullByID("education", entryID, r.now().UTC()), false)
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

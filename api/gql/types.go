package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/thesrcielos/HeroHigherLower/internal/game"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
)

func stringFields(names ...string) graphql.Fields {
	fields := graphql.Fields{}
	for _, name := range names {
		fields[name] = &graphql.Field{Type: graphql.String}
	}
	return fields
}

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"_id":                         &graphql.Field{Type: graphql.ID},
		"email":                       &graphql.Field{Type: graphql.String},
		"username":                    &graphql.Field{Type: graphql.String},
		"higherLowerGamesPlayed":      &graphql.Field{Type: graphql.Int},
		"higherLowerGameHighestScore": &graphql.Field{Type: graphql.Int},
		"draftGamesPlayed":            &graphql.Field{Type: graphql.Int},
		"draftGameWins":               &graphql.Field{Type: graphql.Int},
		"draftGameLosses":             &graphql.Field{Type: graphql.Int},
	},
})

var authType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Auth",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"user":  &graphql.Field{Type: userType},
	},
})

var powerstatsType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "Powerstats",
	Fields: stringFields(hero.Attributes...),
})

var biographyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Biography",
	Fields: graphql.Fields{
		"full_name":        &graphql.Field{Type: graphql.String},
		"alter_egos":       &graphql.Field{Type: graphql.String},
		"aliases":          &graphql.Field{Type: graphql.NewList(graphql.String)},
		"place_of_birth":   &graphql.Field{Type: graphql.String},
		"first_appearance": &graphql.Field{Type: graphql.String},
		"publisher":        &graphql.Field{Type: graphql.String},
		"alignment":        &graphql.Field{Type: graphql.String},
	},
})

var appearanceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Appearance",
	Fields: graphql.Fields{
		"gender":     &graphql.Field{Type: graphql.String},
		"race":       &graphql.Field{Type: graphql.String},
		"height":     &graphql.Field{Type: graphql.NewList(graphql.String)},
		"weight":     &graphql.Field{Type: graphql.NewList(graphql.String)},
		"eye_color":  &graphql.Field{Type: graphql.String},
		"hair_color": &graphql.Field{Type: graphql.String},
	},
})

var workType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "Work",
	Fields: stringFields("occupation", "base"),
})

var connectionsType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "Connections",
	Fields: stringFields("group_affiliation", "relatives"),
})

var imageType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "Image",
	Fields: stringFields("url"),
})

var heroType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Hero",
	Fields: graphql.Fields{
		"_id":         &graphql.Field{Type: graphql.ID},
		"response":    &graphql.Field{Type: graphql.String},
		"id":          &graphql.Field{Type: graphql.String},
		"name":        &graphql.Field{Type: graphql.String},
		"powerstats":  &graphql.Field{Type: powerstatsType},
		"biography":   &graphql.Field{Type: biographyType},
		"appearance":  &graphql.Field{Type: appearanceType},
		"work":        &graphql.Field{Type: workType},
		"connections": &graphql.Field{Type: connectionsType},
		"image":       &graphql.Field{Type: imageType},
	},
})

var sessionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HigherLowerSession",
	Fields: graphql.Fields{
		"heroA":      &graphql.Field{Type: heroType},
		"heroB":      &graphql.Field{Type: heroType},
		"attribute":  &graphql.Field{Type: graphql.String},
		"difficulty": &graphql.Field{Type: graphql.String},
		"diff":       &graphql.Field{Type: graphql.Float},
		"prompt":     &graphql.Field{Type: graphql.String},
	},
})

var guessResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HigherLowerGuessResult",
	Fields: graphql.Fields{
		"isCorrect":     &graphql.Field{Type: graphql.Boolean},
		"newScore":      &graphql.Field{Type: graphql.Int},
		"scoreDelta":    &graphql.Field{Type: graphql.Int},
		"correctAnswer": &graphql.Field{Type: graphql.String},
	},
})

var persistResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HigherLowerPersistResult",
	Fields: graphql.Fields{
		"higherLowerGamesPlayed":      &graphql.Field{Type: graphql.Int},
		"higherLowerGameHighestScore": &graphql.Field{Type: graphql.Int},
	},
})

// The presenters below turn domain values into maps for the default resolver.
// A nil input yields an untyped nil so the field resolves to null.

func presentUser(u *user.User) interface{} {
	if u == nil {
		return nil
	}
	return map[string]interface{}{
		"_id":                         u.ID,
		"email":                       u.Email,
		"username":                    u.Username,
		"higherLowerGamesPlayed":      u.HigherLowerGamesPlayed,
		"higherLowerGameHighestScore": u.HigherLowerGameHighestScore,
		"draftGamesPlayed":            u.DraftGamesPlayed,
		"draftGameWins":               u.DraftGameWins,
		"draftGameLosses":             u.DraftGameLosses,
	}
}

func presentUsers(users []user.User) []interface{} {
	out := make([]interface{}, 0, len(users))
	for i := range users {
		out = append(out, presentUser(&users[i]))
	}
	return out
}

func presentAuth(a *user.AuthPayload) interface{} {
	if a == nil {
		return nil
	}
	return map[string]interface{}{"token": a.Token, "user": presentUser(a.User)}
}

func presentHero(h *hero.Hero) interface{} {
	if h == nil {
		return nil
	}
	stats := map[string]interface{}{}
	for attribute, value := range h.Powerstats.Data() {
		stats[attribute] = value
	}
	bio := h.Biography.Data()
	look := h.Appearance.Data()
	work := h.Work.Data()
	conn := h.Connections.Data()
	return map[string]interface{}{
		"_id":        h.StoreID,
		"response":   h.Response,
		"id":         h.HeroID,
		"name":       h.Name,
		"powerstats": stats,
		"biography": map[string]interface{}{
			"full_name":        bio.FullName,
			"alter_egos":       bio.AlterEgos,
			"aliases":          bio.Aliases,
			"place_of_birth":   bio.PlaceOfBirth,
			"first_appearance": bio.FirstAppearance,
			"publisher":        bio.Publisher,
			"alignment":        bio.Alignment,
		},
		"appearance": map[string]interface{}{
			"gender":     look.Gender,
			"race":       look.Race,
			"height":     look.Height,
			"weight":     look.Weight,
			"eye_color":  look.EyeColor,
			"hair_color": look.HairColor,
		},
		"work":        map[string]interface{}{"occupation": work.Occupation, "base": work.Base},
		"connections": map[string]interface{}{"group_affiliation": conn.GroupAffiliation, "relatives": conn.Relatives},
		"image":       map[string]interface{}{"url": h.Image.Data().URL},
	}
}

func presentHeroes(heroes []hero.Hero) []interface{} {
	out := make([]interface{}, 0, len(heroes))
	for i := range heroes {
		out = append(out, presentHero(&heroes[i]))
	}
	return out
}

func presentSession(s *game.Session) interface{} {
	return map[string]interface{}{
		"heroA":      presentHero(&s.HeroA),
		"heroB":      presentHero(&s.HeroB),
		"attribute":  s.Attribute,
		"difficulty": string(s.Difficulty),
		"diff":       s.Diff,
		"prompt":     s.Prompt,
	}
}

func presentGuess(r *game.GuessResult) interface{} {
	return map[string]interface{}{
		"isCorrect":     r.IsCorrect,
		"newScore":      r.NewScore,
		"scoreDelta":    r.ScoreDelta,
		"correctAnswer": r.CorrectAnswer,
	}
}

func presentSummary(s *game.SessionSummary) interface{} {
	return map[string]interface{}{
		"higherLowerGamesPlayed":      s.HigherLowerGamesPlayed,
		"higherLowerGameHighestScore": s.HigherLowerGameHighestScore,
	}
}

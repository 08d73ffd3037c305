package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

// $dateToString formats per revenue granularity. Weeks use the ISO week-year.
var periodFormats = map[repositories.Granularity]string{
	repositories.GranularityDay:   "%Y-%m-%d",
	repositories.GranularityWeek:  "%G-W%V",
	repositories.GranularityMonth: "%Y-%m",
}

const monthFormat = "%Y-%m"

func stage(name string, body any) bson.D {
	return bson.D{{Key: name, Value: body}}
}

func dateToString(format, field string) bson.M {
	return bson.M{"$dateToString": bson.M{"format": format, "date": field}}
}

func between(r entities.DateRange) bson.M {
	return bson.M{"$gte": r.Start, "$lte": r.End}
}

// PeriodFormat returns the $dateToString format for g, defaulting to daily buckets.
func PeriodFormat(g repositories.Granularity) string {
	if f, ok := periodFormats[g]; ok {
		return f
	}
	return periodFormats[repositories.GranularityDay]
}

func revenueOrdersMatch(r entities.DateRange) bson.M {
	return bson.M{
		"createdAt": between(r),
		"status":    bson.M{"$nin": entities.NonRevenueStatuses},
	}
}

// revenueGroup groups revenue-bearing orders under id and sizes the customer set.
func revenueGroup(id any) []bson.D {
	return []bson.D{
		stage("$group", bson.M{
			"_id":           id,
			"revenue":       bson.M{"$sum": "$total"},
			"orders":        bson.M{"$sum": 1},
			"avgOrderValue": bson.M{"$avg": "$total"},
			"customers":     bson.M{"$addToSet": "$user"},
		}),
		stage("$project", bson.M{
			"revenue":         1,
			"orders":          1,
			"avgOrderValue":   1,
			"uniqueCustomers": bson.M{"$size": "$customers"},
		}),
	}
}

func funnelPipeline(r entities.DateRange, channel entities.Channel) mongo.Pipeline {
	match := bson.M{"timestamp": between(r)}
	if channel != "" {
		match["attributionChannel"] = channel
	}

	return mongo.Pipeline{
		stage("$match", match),
		stage("$group", bson.M{
			"_id":         "$eventType",
			"users":       bson.M{"$addToSet": "$user"},
			"sessions":    bson.M{"$addToSet": "$sessionId"},
			"totalEvents": bson.M{"$sum": 1},
		}),
		stage("$project", bson.M{
			"uniqueUsers":    bson.M{"$size": "$users"},
			"uniqueSessions": bson.M{"$size": "$sessions"},
			"totalEvents":    1,
		}),
	}
}

func trafficPipeline(r entities.DateRange) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{
			"timestamp": between(r),
			"eventType": entities.EventPageView,
		}),
		stage("$group", bson.M{
			"_id":       "$attributionChannel",
			"sessions":  bson.M{"$addToSet": "$sessionId"},
			"pageViews": bson.M{"$sum": 1},
		}),
		stage("$project", bson.M{
			"sessions":  bson.M{"$size": "$sessions"},
			"pageViews": 1,
		}),
	}
}

func revenueSeriesPipeline(r entities.DateRange, g repositories.Granularity) mongo.Pipeline {
	p := mongo.Pipeline{stage("$match", revenueOrdersMatch(r))}
	p = append(p, revenueGroup(dateToString(PeriodFormat(g), "$createdAt"))...)
	return append(p, stage("$sort", bson.M{"_id": 1}))
}

func revenueSummaryPipeline(r entities.DateRange) mongo.Pipeline {
	p := mongo.Pipeline{stage("$match", revenueOrdersMatch(r))}
	return append(p, revenueGroup(nil)...)
}

func revenueByChannelPipeline(r entities.DateRange) mongo.Pipeline {
	p := mongo.Pipeline{stage("$match", revenueOrdersMatch(r))}
	p = append(p, revenueGroup("$attributionChannel")...)
	return append(p, stage("$sort", bson.M{"revenue": -1}))
}

func signupCohortPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"firstSeenAt": bson.M{"$type": "date"}}),
		stage("$group", bson.M{
			"_id":   dateToString(monthFormat, "$firstSeenAt"),
			"users": bson.M{"$push": "$_id"},
			"count": bson.M{"$sum": 1},
		}),
		stage("$sort", bson.M{"_id": 1}),
	}
}

// cohortActivityPipeline counts every order placed by the cohort regardless of status.
func cohortActivityPipeline(users []primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"user": bson.M{"$in": users}}),
		stage("$group", bson.M{
			"_id":         dateToString(monthFormat, "$createdAt"),
			"revenue":     bson.M{"$sum": "$total"},
			"orders":      bson.M{"$sum": 1},
			"activeUsers": bson.M{"$addToSet": "$user"},
		}),
		stage("$project", bson.M{
			"revenue":     1,
			"orders":      1,
			"activeUsers": bson.M{"$size": "$activeUsers"},
		}),
		stage("$sort", bson.M{"_id": 1}),
	}
}

func categoryPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"isActive": true}),
		stage("$group", bson.M{
			"_id":             "$category",
			"productCount":    bson.M{"$sum": 1},
			"totalViews":      bson.M{"$sum": "$viewCount"},
			"totalAddToCarts": bson.M{"$sum": "$addToCartCount"},
			"totalPurchases":  bson.M{"$sum": "$purchaseCount"},
			"avgPrice":        bson.M{"$avg": "$price"},
			"totalRevenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$price", "$purchaseCount"},
			}},
		}),
		stage("$sort", bson.M{"totalRevenue": -1}),
	}
}

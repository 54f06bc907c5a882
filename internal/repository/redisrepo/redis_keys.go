package redisrepo

import "fmt"

const (
	TWEET_KEY       = "tweet:%s"      // <tweetID>
	TWEETS_PAGE_KEY = "tweets:%d:%d"  // <limit>:<offset>
	RATE_LIMIT_KEY  = "rate:%s:%s"    // <scope>:<clientIP>
)

const TWEET_KEYS_PATTERN = "tweet*"

func TweetKey(tweetID string) string {
	return fmt.Sprintf(TWEET_KEY, tweetID)
}

func TweetsPageKey(limit int, offset int) string {
	return fmt.Sprintf(TWEETS_PAGE_KEY, limit, offset)
}

func RateLimitKey(scope string, clientIP string) string {
	return fmt.Sprintf(RATE_LIMIT_KEY, scope, clientIP)
}

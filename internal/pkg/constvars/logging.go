package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingRedisKey              = "redis_key"
	LoggingSurveyCodeKey         = "survey_code"
	LoggingSessionIDKey          = "session_id"
	LoggingQuizNoKey             = "quiz_no"
	LoggingEmailKey              = "email"
	LoggingEntitySetKey          = "entity_set"
	LoggingSOAPActionKey         = "soap_action"
	LoggingResponseLengthKey     = "response_length"
	LoggingRecordsSentKey        = "records_sent"
	LoggingSessionStateKey       = "session_state"
	LoggingPanicKey              = "panic"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingQueueNameKey          = "queue_name"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingCollectionKey         = "collection"
	LoggingCountKey              = "count"
	LoggingCacheHitKey           = "cache_hit"
	LoggingErrorFieldsKey        = "error_fields"
)

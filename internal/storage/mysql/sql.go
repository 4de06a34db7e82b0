package mysql

const upsertListingSQL = `
INSERT INTO listings
  (id, title, description, location, type, beds, baths, sqft,
   price, price_value, image, images, features, lat, lng, agent_email, is_favorite)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title       = VALUES(title),
  description = VALUES(description),
  location    = VALUES(location),
  type        = VALUES(type),
  beds        = VALUES(beds),
  baths       = VALUES(baths),
  sqft        = VALUES(sqft),
  price       = VALUES(price),
  price_value = VALUES(price_value),
  image       = VALUES(image),
  images      = VALUES(images),
  features    = VALUES(features),
  lat         = VALUES(lat),
  lng         = VALUES(lng),
  agent_email = VALUES(agent_email),
  is_favorite = VALUES(is_favorite),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertAgentSQL = `
INSERT INTO agents (email, name, phone, image)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name  = VALUES(name),
  phone = VALUES(phone),
  image = VALUES(image)
`

const insertMissSQL = `
INSERT INTO sync_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP
`

const listingColumns = `
  l.id, l.title, l.description, l.location, l.type, l.beds, l.baths, l.sqft,
  l.price, l.price_value, l.image, l.images, l.features, l.lat, l.lng, l.is_favorite,
  a.email, a.name, a.phone, a.image
`

const getListingSQL = `
SELECT` + listingColumns + `
FROM listings l
LEFT JOIN agents a ON a.email = l.agent_email
WHERE l.id = ?
`

const listListingsSQL = `
SELECT` + listingColumns + `
FROM listings l
LEFT JOIN agents a ON a.email = l.agent_email
ORDER BY l.updated_at DESC, l.id
`

const listAgentsSQL = `
SELECT email, name, phone, image
FROM agents
ORDER BY email
`
